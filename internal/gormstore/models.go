package gormstore

import "github.com/mesh-intelligence/propai/pkg/types"

// Row models. Seq is the clustered primary key and gives insertion order;
// ID is the public UUID. CreatedAt is set by the backend in epoch millis,
// so GORM's own timestamp tracking is disabled.

type propertyRow struct {
	Seq         uint    `gorm:"primaryKey;autoIncrement"`
	ID          string  `gorm:"type:varchar(36);not null;uniqueIndex"`
	Title       string  `gorm:"type:text;not null"`
	Price       string  `gorm:"type:varchar(64);not null"`
	Location    string  `gorm:"type:text;not null"`
	Bedrooms    int     `gorm:"not null"`
	Bathrooms   float64 `gorm:"not null"`
	Area        string  `gorm:"type:varchar(64);not null"`
	Image       string  `gorm:"type:text;not null"`
	Description string  `gorm:"type:text;not null"`
	Type        string  `gorm:"type:varchar(32);not null"`
	Featured    bool    `gorm:"not null;index"`
	CreatedAt   int64   `gorm:"not null;autoCreateTime:false"`
}

func (propertyRow) TableName() string { return "properties" }

func newPropertyRow(p types.Property) propertyRow {
	return propertyRow{
		ID: p.ID, Title: p.Title, Price: p.Price, Location: p.Location,
		Bedrooms: p.Bedrooms, Bathrooms: p.Bathrooms, Area: p.Area, Image: p.Image,
		Description: p.Description, Type: p.Type, Featured: p.Featured, CreatedAt: p.CreatedAt,
	}
}

func (r propertyRow) entity() types.Property {
	return types.Property{
		ID: r.ID, Title: r.Title, Price: r.Price, Location: r.Location,
		Bedrooms: r.Bedrooms, Bathrooms: r.Bathrooms, Area: r.Area, Image: r.Image,
		Description: r.Description, Type: r.Type, Featured: r.Featured, CreatedAt: r.CreatedAt,
	}
}

type userRow struct {
	Seq       uint    `gorm:"primaryKey;autoIncrement"`
	ID        string  `gorm:"type:varchar(36);not null;uniqueIndex"`
	Email     string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name      string  `gorm:"type:varchar(255);not null"`
	Role      string  `gorm:"type:varchar(16);not null;index"`
	Avatar    *string `gorm:"type:text"`
	CreatedAt int64   `gorm:"not null;autoCreateTime:false"`
}

func (userRow) TableName() string { return "users" }

func newUserRow(u types.User) userRow {
	u = u.Clone()
	return userRow{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), Avatar: u.Avatar, CreatedAt: u.CreatedAt}
}

func (r userRow) entity() types.User {
	return types.User{ID: r.ID, Email: r.Email, Name: r.Name, Role: types.Role(r.Role), Avatar: r.Avatar, CreatedAt: r.CreatedAt}.Clone()
}

type messageRow struct {
	Seq       uint   `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"type:varchar(36);not null;uniqueIndex"`
	UserID    string `gorm:"type:varchar(64);not null;index:idx_messages_user"`
	Content   string `gorm:"type:text;not null"`
	IsAI      bool   `gorm:"column:is_ai;not null"`
	Timestamp int64  `gorm:"not null;index:idx_messages_user"`
}

func (messageRow) TableName() string { return "messages" }

func newMessageRow(m types.Message) messageRow {
	return messageRow{ID: m.ID, UserID: m.UserID, Content: m.Content, IsAI: m.IsAI, Timestamp: m.Timestamp}
}

func (r messageRow) entity() types.Message {
	return types.Message{ID: r.ID, UserID: r.UserID, Content: r.Content, IsAI: r.IsAI, Timestamp: r.Timestamp}
}

type collectionRow struct {
	Seq         uint     `gorm:"primaryKey;autoIncrement"`
	ID          string   `gorm:"type:varchar(36);not null;uniqueIndex"`
	UserID      string   `gorm:"type:varchar(64);not null;index"`
	Name        string   `gorm:"type:varchar(255);not null"`
	PropertyIDs []string `gorm:"column:property_ids;type:json;serializer:json"`
	CreatedAt   int64    `gorm:"not null;autoCreateTime:false"`
}

func (collectionRow) TableName() string { return "collections" }

func newCollectionRow(c types.Collection) collectionRow {
	c = c.Clone()
	return collectionRow{ID: c.ID, UserID: c.UserID, Name: c.Name, PropertyIDs: c.PropertyIDs, CreatedAt: c.CreatedAt}
}

func (r collectionRow) entity() types.Collection {
	return types.Collection{ID: r.ID, UserID: r.UserID, Name: r.Name, PropertyIDs: r.PropertyIDs, CreatedAt: r.CreatedAt}.Clone()
}

// entityRow is implemented by every row model.
type entityRow[E any] interface {
	entity() E
}

func entities[R entityRow[E], E any](rows []R) []E {
	out := make([]E, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entity())
	}
	return out
}
