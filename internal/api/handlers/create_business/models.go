package create_business

// CreateBusinessRequest HTTP модель запроса
type CreateBusinessRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	WorkingHours string `json:"workingHours"`           // "09:00-17:00"
	SlotDuration int    `json:"slotDuration,omitempty"` // минуты, по умолчанию 30
	IsActive     *bool  `json:"isActive,omitempty"`     // по умолчанию true
}
