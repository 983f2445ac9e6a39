package model

import (
	"encoding/json"

	"Cataphract/internal/campaign/entity"
)

// CampaignRow 是 MySQL 里的战役行：几个可查询列 + 整棵聚合树的 JSON 文档。
// 开放 map（命令参数）与枚举值跟着 JSON 一起无损往返，避免逐实体建表。
type CampaignRow struct {
	ID         int    `gorm:"column:id;primaryKey"`
	Name       string `gorm:"column:name;size:255"`
	CurrentDay int    `gorm:"column:current_day"`
	Status     string `gorm:"column:status;size:32"`
	Document   []byte `gorm:"column:document;type:longblob"`
}

func (CampaignRow) TableName() string {
	return "campaigns"
}

// CampaignDoc 是 MongoDB 里的战役文档，结构与 MySQL 行对齐。
type CampaignDoc struct {
	ID         int    `bson:"_id"`
	Name       string `bson:"name"`
	CurrentDay int    `bson:"current_day"`
	Status     string `bson:"status"`
	Document   []byte `bson:"document"`
}

// Encode 把聚合树序列化成持久化形态。
func Encode(c *entity.Campaign) (CampaignRow, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return CampaignRow{}, err
	}
	return CampaignRow{
		ID:         int(c.ID),
		Name:       c.Name,
		CurrentDay: c.CurrentDay,
		Status:     c.Status,
		Document:   raw,
	}, nil
}

// Decode 从 JSON 文档还原整棵聚合树。
func Decode(document []byte) (*entity.Campaign, error) {
	var c entity.Campaign
	if err := json.Unmarshal(document, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
