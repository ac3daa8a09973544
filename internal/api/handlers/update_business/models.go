package update_business

// UpdateBusinessRequest HTTP модель запроса.
// Все поля опциональны - обновляются только переданные значения.
type UpdateBusinessRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	Address      *string `json:"address,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	WorkingHours *string `json:"workingHours,omitempty"`
	SlotDuration *int    `json:"slotDuration,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}
