package catalog

import "bio_olymp_backend/internal/model"

var defaultCategories = []model.Category{
	{ID: "botany", Name: "Ботаника", Description: "Растения, грибы, фотосинтез", Icon: "🌿"},
	{ID: "zoology", Name: "Зоология", Description: "Животные, адаптации, классификация", Icon: "🦉"},
	{ID: "ecology", Name: "Экология", Description: "Экосистемы, пищевые цепи, среда обитания", Icon: "🌍"},
	{ID: "anatomy", Name: "Анатомия", Description: "Строение человека, системы органов", Icon: "🫀"},
}

var defaultQuestions = []model.Question{
	// Ботаника
	{
		ID:            "bot_001",
		Type:          model.QuestionKindChoice,
		Category:      "Ботаника",
		Question:      "Какие органы у кувшиночника видоизменились в ловчие аппараты?",
		Options:       []string{"Цветок", "Лист", "Стебель", "Корень"},
		CorrectAnswer: 1,
		Explanation:   "У растений рода Непентес (кувшиночник) листья преобразованы в кувшинчики для ловли насекомых. Это эволюционная адаптация к жизни на бедных азотом почвах.",
		Points:        2,
		Difficulty:    "medium",
	},
	{
		ID:            "bot_002",
		Type:          model.QuestionKindChoice,
		Category:      "Ботаника",
		Question:      "Что является универсальной элементарной единицей живого?",
		Options:       []string{"Атом", "Молекула", "Клетка", "Ткань"},
		CorrectAnswer: 2,
		Explanation:   "Клетка - основная структурная и функциональная единица всех живых организмов. Все живые существа состоят из одной или множества клеток.",
		Points:        1,
		Difficulty:    "easy",
	},
	{
		ID:            "bot_003",
		Type:          model.QuestionKindChoice,
		Category:      "Ботаника",
		Question:      "Где в растении происходит фотосинтез?",
		Options:       []string{"В корнях", "В хлоропластах", "В вакуолях", "В ядре"},
		CorrectAnswer: 1,
		Explanation:   "Фотосинтез происходит в хлоропластах - особых органеллах растительных клеток, содержащих зеленый пигмент хлорофилл.",
		Points:        2,
		Difficulty:    "easy",
	},

	// Зоология
	{
		ID:            "zoo_001",
		Type:          model.QuestionKindChoice,
		Category:      "Зоология",
		Question:      "К какой группе животных относится дождевой червь?",
		Options:       []string{"Круглые черви", "Кольчатые черви", "Плоские черви", "Моллюски"},
		CorrectAnswer: 1,
		Explanation:   "Дождевой червь относится к кольчатым червям (тип Annelida). Их тело разделено на сегменты-кольца, что является характерной особенностью этого типа.",
		Points:        2,
		Difficulty:    "medium",
	},
	{
		ID:            "zoo_002",
		Type:          model.QuestionKindChoice,
		Category:      "Зоология",
		Question:      "Сколько камер имеет сердце у рыб?",
		Options:       []string{"Одну", "Две", "Три", "Четыре"},
		CorrectAnswer: 1,
		Explanation:   "У рыб двухкамерное сердце, состоящее из одного предсердия и одного желудочка. Это обеспечивает однокруговое кровообращение.",
		Points:        2,
		Difficulty:    "medium",
	},
	{
		ID:            "zoo_003",
		Type:          model.QuestionKindChoice,
		Category:      "Зоология",
		Question:      "Какое животное является хищником?",
		Options:       []string{"Заяц", "Корова", "Волк", "Олень"},
		CorrectAnswer: 2,
		Explanation:   "Волк - типичный хищник, который охотится на других животных. У хищников есть характерные признаки: острые клыки, когти, бинокулярное зрение.",
		Points:        1,
		Difficulty:    "easy",
	},

	// Экология
	{
		ID:       "eco_001",
		Type:     model.QuestionKindChoice,
		Category: "Экология",
		Question: "Что такое пищевая цепь?",
		Options: []string{
			"Способ питания животных",
			"Последовательность передачи энергии от организма к организму",
			"Места обитания животных",
			"Размножение растений",
		},
		CorrectAnswer: 1,
		Explanation:   "Пищевая цепь - это последовательность организмов, где каждый последующий питается предыдущим. Она показывает путь передачи энергии в экосистеме.",
		Points:        2,
		Difficulty:    "medium",
	},
	{
		ID:            "eco_002",
		Type:          model.QuestionKindChoice,
		Category:      "Экология",
		Question:      "Какие организмы называются продуцентами?",
		Options:       []string{"Хищники", "Растения", "Грибы", "Паразиты"},
		CorrectAnswer: 1,
		Explanation:   "Продуценты (производители) - это автотрофные организмы, главным образом растения, которые создают органические вещества из неорганических путем фотосинтеза.",
		Points:        2,
		Difficulty:    "medium",
	},

	// Анатомия человека
	{
		ID:            "ana_001",
		Type:          model.QuestionKindChoice,
		Category:      "Анатомия",
		Question:      "Сколько костей в скелете взрослого человека?",
		Options:       []string{"156", "206", "256", "306"},
		CorrectAnswer: 1,
		Explanation:   "В скелете взрослого человека насчитывается около 206 костей. У новорожденных костей больше (около 270), но с возрастом некоторые срастаются.",
		Points:        2,
		Difficulty:    "hard",
	},
	{
		ID:            "ana_002",
		Type:          model.QuestionKindChoice,
		Category:      "Анатомия",
		Question:      "Где находится самая маленькая кость человека?",
		Options:       []string{"В пальце", "В ухе", "В носу", "В запястье"},
		CorrectAnswer: 1,
		Explanation:   "Самая маленькая кость человека - стремечко (стремя) - находится в среднем ухе. Её длина всего 2-3,5 мм.",
		Points:        3,
		Difficulty:    "hard",
	},
}

var (
	textbookPasechnik = "Биология. 5 класс. Пасечник В.В."
	textbookPleshakov = "Биология. 5 класс. Плешаков А.А., Сонин Н.И."
	olympiadVos2023   = "Всероссийская олимпиада школьников 2023"
	expertTeacher     = "Учитель биологии высшей категории"
)

// most questions have no known provenance yet
var defaultSources = map[string]model.QuestionSource{
	"bot_001": {
		Textbook:      textbookPasechnik,
		Olympiad:      olympiadVos2023,
		Year:          2023,
		Stage:         "Школьный этап",
		VerifiedBy:    expertTeacher,
		RelatedTopics: []string{"Строение растительной клетки", "Фотосинтез", "Классификация растений"},
	},
	"zoo_001": {
		Textbook:      textbookPleshakov,
		Year:          2023,
		RelatedTopics: []string{"Систематика животных", "Адаптации", "Пищевые цепи"},
	},
	"eco_001": {
		RelatedTopics: []string{"Экосистемы", "Биогеоценоз", "Охрана природы"},
	},
	"ana_001": {
		RelatedTopics: []string{"Системы органов", "Ткани", "Гомеостаз"},
	},
}
