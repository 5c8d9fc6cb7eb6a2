package models

// User is a member of the admin-managed roster. Identity is the selected
// UserName stored in the session cookie; there are no passwords.
type User struct {
	UserName string  `gorm:"primaryKey" json:"user_name"`
	Color    string  `gorm:"type:varchar(16)" json:"color"`
	Icon     string  `gorm:"size:16" json:"icon"` // emoji fallback when IconURL is empty
	IconURL  *string `json:"icon_url,omitempty"`

	Timestamps
}
