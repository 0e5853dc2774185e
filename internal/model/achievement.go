package model

// Achievement is derived from the current progress, never stored as is.
type Achievement struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	Points          int    `json:"points"`
	CurrentProgress int    `json:"currentProgress"`
	Requirement     int    `json:"requirement"`
	IsUnlocked      bool   `json:"isUnlocked"`
}

// AchievementUnlockedEvent is published when an achievement becomes unlocked.
type AchievementUnlockedEvent struct {
	AchievementID string `json:"achievementId"`
	Title         string `json:"title"`
	Points        int    `json:"points"`
	TotalPoints   int    `json:"totalPoints"`
	UnlockedAt    int64  `json:"unlockedAt"`
}
