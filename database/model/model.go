package model

// User is a registered account. The Password column always holds a
// bcrypt hash, never the raw password.
type User struct {
	Id       int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Login    string `json:"login" form:"login" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`

	News []News `json:"-" gorm:"foreignKey:UserId;references:Id"`
}

// News is a single post. Private posts are visible to their owner only.
type News struct {
	Id        int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Title     string `json:"title" form:"title" gorm:"not null"`
	Content   string `json:"content" form:"content"`
	IsPrivate bool   `json:"isPrivate" form:"isPrivate" gorm:"default:false"`
	UserId    int    `json:"userId" gorm:"not null;index"`
}
