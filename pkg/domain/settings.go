package domain

import "slices"

// SettingsKey is the persistence key of the serialized user settings
const SettingsKey = "resumo_news_settings"

// UserSettings holds delivery preferences of the user
type UserSettings struct {
	Email                string     `json:"email"`
	EmailTime            string     `json:"emailTime"` // HH:mm, not validated
	SubscribedCategories []Category `json:"subscribedCategories"`
	WhatsAppNumber       string     `json:"whatsAppNumber"`
}

// DefaultSettings returns settings used when nothing was saved yet
func DefaultSettings() UserSettings {
	return UserSettings{
		Email:                "",
		EmailTime:            "07:00",
		SubscribedCategories: []Category{CategoryGeneral, CategoryPolitics, CategoryReligion, CategoryCelebrity},
		WhatsAppNumber:       "",
	}
}

// Clone returns a deep copy of the settings
func (s UserSettings) Clone() UserSettings {
	res := s
	res.SubscribedCategories = slices.Clone(s.SubscribedCategories)
	return res
}

// IsSubscribed reports whether the category is in the subscription set
func (s UserSettings) IsSubscribed(c Category) bool {
	return slices.Contains(s.SubscribedCategories, c)
}

// ToggleCategory returns a copy with the category removed if subscribed, appended otherwise
func (s UserSettings) ToggleCategory(c Category) UserSettings {
	res := s.Clone()
	if res.IsSubscribed(c) {
		res.SubscribedCategories = slices.DeleteFunc(res.SubscribedCategories, func(v Category) bool { return v == c })
		return res
	}
	res.SubscribedCategories = append(res.SubscribedCategories, c)
	return res
}

// Subscriptions returns subscribed categories in declaration order, skipping unknown ones
func (s UserSettings) Subscriptions() []Category {
	res := []Category{}
	for _, c := range Categories() {
		if s.IsSubscribed(c) {
			res = append(res, c)
		}
	}
	return res
}
