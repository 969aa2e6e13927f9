package db

import "gorm.io/gorm"

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	gorm.Model
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	Email     string `gorm:"size:255;not null"`
	Phone     string `gorm:"size:40"`
	Subject   string `gorm:"size:120;not null"`
	Message   string `gorm:"type:text;not null"`
	Consent   bool
	IsRead    bool `gorm:"default:false;index"`
}
