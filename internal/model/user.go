package model

import (
	"net/url"
	"time"
)

// 订阅套餐
const (
	PlanBasic    = "basic"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// User 用户模型
type User struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	Username             string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email                string    `json:"email" gorm:"size:254;index"`
	PasswordHash         string    `json:"-"`
	FirstName            string    `json:"first_name" gorm:"size:150"`
	LastName             string    `json:"last_name" gorm:"size:150"`
	GoogleID             *string   `json:"-" gorm:"size:100;uniqueIndex"`
	ProfilePicture       *string   `json:"-" gorm:"size:500"`
	Bio                  string    `json:"bio" gorm:"size:500"`
	DateOfBirth          *Date     `json:"date_of_birth"`
	PhoneNumber          string    `json:"phone_number" gorm:"size:15"`
	SubscriptionPlan     string    `json:"subscription_plan" gorm:"size:20;not null"`
	IsActiveSubscription bool      `json:"is_active_subscription"`
	IsActive             bool      `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName 姓名，未填写时使用用户名
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// ProfilePictureURL 头像地址，未设置时使用默认头像
func (u *User) ProfilePictureURL() string {
	if u.ProfilePicture != nil && *u.ProfilePicture != "" {
		return *u.ProfilePicture
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(u.FullName()) + "&background=random"
}

// Profile 用户资料的对外表示，附带派生字段
type Profile struct {
	*User
	FullName          string `json:"full_name"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// Profile 构造对外资料
func (u *User) Profile() Profile {
	return Profile{
		User:              u,
		FullName:          u.FullName(),
		ProfilePictureURL: u.ProfilePictureURL(),
	}
}
