package models

import "time"

// Organization 配送组织
type Organization struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	// 关联
	Pricings []Pricing `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"pricing,omitempty"`
}

// TableName 指定表名
func (Organization) TableName() string {
	return "organizations"
}
