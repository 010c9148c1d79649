package model

// Contact is the data structure for a person that we know.
// The Id is assigned by the store when the contact is created.
type Contact struct {
	Id    string `json:"id"    db:"id"`
	Name  string `json:"name"  db:"name"`
	Email string `json:"email" db:"email"`
	Phone string `json:"phone" db:"phone"`
}

// ContactForm holds the values submitted by the add and edit forms. Id and OldName are only
// present on the edit form, where they identify the record being replaced.
type ContactForm struct {
	Id      string `form:"id"`
	OldName string `form:"oldName"`
	Name    string `form:"name"    validate:"required,max=100"`
	Email   string `form:"email"   validate:"required,email"`
	Phone   string `form:"phone"   validate:"required,mobile_id"`
}

// Contact converts the submitted form values into a contact.
func (f ContactForm) Contact() Contact {
	return Contact{
		Id:    f.Id,
		Name:  f.Name,
		Email: f.Email,
		Phone: f.Phone,
	}
}
