package post

import (
	"errors"
	"strings"
	"time"

	"iyouconnect/internal/core/simulation"
)

// MaxContentLength caps post content, in characters, at creation time.
const MaxContentLength = 320

var (
	ErrInvalidPost  = errors.New("username and content are required")
	ErrPostNotFound = errors.New("post not found")
	ErrPostLocked   = errors.New("developer posts are locked")
)

type Post struct {
	ID              string              `gorm:"primaryKey;type:char(36)" json:"id"`
	Seq             uint64              `gorm:"index" json:"-"`
	Username        string              `gorm:"not null;index" json:"username"`
	DisplayName     string              `json:"displayName,omitempty"`
	Content         string              `gorm:"type:text;not null" json:"content"`
	CreatedAt       time.Time           `gorm:"not null;index" json:"createdAt"`
	IsDeveloper     bool                `json:"isDeveloper"`
	Response        string              `gorm:"type:text" json:"response,omitempty"`
	ResponseAuthor  string              `json:"responseAuthor,omitempty"`
	Likes           int                 `gorm:"not null;default:0" json:"likes"`
	Comments        int                 `gorm:"not null;default:0" json:"comments"`
	Tags            []string            `gorm:"serializer:json;type:text" json:"tags"`
	AutoLikeTarget  *int                `json:"autoLikeTarget"`
	AutoLikeProfile *simulation.Persona `gorm:"serializer:json;type:text" json:"autoLikeProfile"`
}

// Clone returns a deep copy so callers never share mutable state with a store.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	if p.AutoLikeTarget != nil {
		target := *p.AutoLikeTarget
		c.AutoLikeTarget = &target
	}
	if p.AutoLikeProfile != nil {
		profile := *p.AutoLikeProfile
		c.AutoLikeProfile = &profile
	}
	return &c
}

// NormalizeHandle trims, strips leading @ signs and lowercases a username.
func NormalizeHandle(value string) string {
	return strings.ToLower(strings.TrimLeft(strings.TrimSpace(value), "@"))
}

// Truncate cuts content to at most max characters.
func Truncate(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max])
}
