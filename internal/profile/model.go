// File: internal/profile/model.go
package profile

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"krikins_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTheme is applied when a profile carries no theme or an unknown tag.
const DefaultTheme = "modern"

// Themes enumerates the card theme tags a profile may carry.
var Themes = []string{"modern", "midnight", "emerald", "crimson", "executive", "horizon", "oceanic", "nebula"}

// ImagePosition is the transform applied to the photo inside the card frame:
// pixel offsets plus a zoom multiplier around the frame center.
type ImagePosition struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// DefaultImagePosition is the identity transform used when none is stored.
func DefaultImagePosition() ImagePosition {
	return ImagePosition{X: 0, Y: 0, Scale: 1}
}

// Value implements driver.Valuer so the transform is stored as a JSON column.
func (p ImagePosition) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for the JSON column.
func (p *ImagePosition) Scan(value interface{}) error {
	if value == nil {
		*p = DefaultImagePosition()
		return nil
	}
	return scanJSON(value, p, "ImagePosition")
}

// Experience is one employment history row. ID is a client-generated opaque
// token unique within the profile's sequence; it exists only for stable row
// identity during edits.
type Experience struct {
	ID      string `json:"id"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

// ExperienceList is an ordered experience sequence stored as one JSON column.
type ExperienceList []Experience

func (l ExperienceList) Value() (driver.Value, error) {
	if l == nil {
		l = ExperienceList{}
	}
	return json.Marshal(l)
}

func (l *ExperienceList) Scan(value interface{}) error {
	if value == nil {
		*l = ExperienceList{}
		return nil
	}
	return scanJSON(value, l, "ExperienceList")
}

// StringList is an ordered list of free-text strings stored as one JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	return scanJSON(value, l, "StringList")
}

func scanJSON(value, dest interface{}, what string) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("failed to scan %s: unsupported type %T", what, value)
	}
}

// --- Main Profile Model ---

// Profile is one badge card record.
type Profile struct {
	common.BaseModel
	Name          string         `gorm:"type:varchar(255);not null;default:''"`
	Role          string         `gorm:"type:varchar(255);not null;default:''"`
	Age           int            `gorm:"not null;default:0"`
	Nationality   string         `gorm:"type:varchar(100);not null;default:''"`
	IDNumber      string         `gorm:"column:id_number;type:varchar(100);not null;default:''"`
	EventName     string         `gorm:"column:event_name;type:varchar(255);not null;default:''"`
	ImageURL      string         `gorm:"column:image_url;type:text;not null;default:''"`
	ImagePosition *ImagePosition `gorm:"column:image_position;type:jsonb"`
	Languages     StringList     `gorm:"type:jsonb"`
	Experience    ExperienceList `gorm:"type:jsonb"`
	Email         string         `gorm:"type:varchar(255);not null;default:''"`
	Mobile        string         `gorm:"type:varchar(50);not null;default:''"`
	Theme         string         `gorm:"type:varchar(50);not null;default:'modern'"`
}

func (Profile) TableName() string {
	return "employee_profiles"
}

// AfterFind keeps loaded rows well-formed: sequence fields are never nil and
// the theme is never blank.
func (p *Profile) AfterFind(tx *gorm.DB) error {
	p.Normalize()
	return nil
}

// Normalize enforces the aggregate invariants on a profile built from
// arbitrary input.
func (p *Profile) Normalize() {
	if p.Languages == nil {
		p.Languages = StringList{}
	}
	if p.Experience == nil {
		p.Experience = ExperienceList{}
	}
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
}

// NewProfile returns the blank profile a fresh editing session starts from.
func NewProfile(placeholderImageURL string) *Profile {
	pos := DefaultImagePosition()
	return &Profile{
		ImageURL:      placeholderImageURL,
		ImagePosition: &pos,
		Languages:     StringList{},
		Experience:    ExperienceList{},
		Theme:         DefaultTheme,
	}
}

// Position returns the stored transform, or the identity transform when absent.
func (p *Profile) Position() ImagePosition {
	if p.ImagePosition == nil {
		return DefaultImagePosition()
	}
	return *p.ImagePosition
}

// --- Edit operations ---
//
// Each operation mutates the aggregate the way one editor control does.
// They run atomically within a single request, so index-addressed language
// edits cannot race a concurrent removal.

// SetTheme replaces the card theme. Re-picking the active theme is a no-op.
func (p *Profile) SetTheme(tag string) {
	p.Theme = tag
}

// AddLanguage appends one empty language row.
func (p *Profile) AddLanguage() {
	p.Languages = append(p.Languages, "")
}

// SetLanguage replaces the language at index i.
func (p *Profile) SetLanguage(i int, value string) error {
	if i < 0 || i >= len(p.Languages) {
		return fmt.Errorf("language index %d out of range [0,%d)", i, len(p.Languages))
	}
	p.Languages[i] = value
	return nil
}

// RemoveLanguage deletes the language at index i, shifting later entries down.
func (p *Profile) RemoveLanguage(i int) error {
	if i < 0 || i >= len(p.Languages) {
		return fmt.Errorf("language index %d out of range [0,%d)", i, len(p.Languages))
	}
	p.Languages = append(p.Languages[:i], p.Languages[i+1:]...)
	return nil
}

// AddExperience appends a placeholder experience row with a fresh token and
// returns it.
func (p *Profile) AddExperience() Experience {
	exp := Experience{
		ID:      p.nextExperienceToken(),
		Company: "New Company",
		Role:    "Role",
	}
	p.Experience = append(p.Experience, exp)
	return exp
}

// nextExperienceToken mints a row token from a millisecond clock reading,
// bumping until it is unique within this profile's sequence.
func (p *Profile) nextExperienceToken() string {
	n := time.Now().UnixMilli()
	for {
		token := strconv.FormatInt(n, 10)
		if !p.hasExperienceToken(token) {
			return token
		}
		n++
	}
}

func (p *Profile) hasExperienceToken(token string) bool {
	for _, exp := range p.Experience {
		if exp.ID == token {
			return true
		}
	}
	return false
}

// SetExperienceCompany replaces the company of the row matched by token.
// Reports whether a row matched.
func (p *Profile) SetExperienceCompany(token, value string) bool {
	for i := range p.Experience {
		if p.Experience[i].ID == token {
			p.Experience[i].Company = value
			return true
		}
	}
	return false
}

// SetExperienceRole replaces the role of the row matched by token.
func (p *Profile) SetExperienceRole(token, value string) bool {
	for i := range p.Experience {
		if p.Experience[i].ID == token {
			p.Experience[i].Role = value
			return true
		}
	}
	return false
}

// RemoveExperience deletes the row matched by token. Reports whether a row
// matched.
func (p *Profile) RemoveExperience(token string) bool {
	for i := range p.Experience {
		if p.Experience[i].ID == token {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

// --- DTOs for API ---

// ProfileRequest carries the full profile payload. Every save replaces the
// record wholesale; nothing here is merged field by field server-side.
type ProfileRequest struct {
	Name          string         `json:"name" binding:"omitempty,max=255"`
	Role          string         `json:"role" binding:"omitempty,max=255"`
	Age           int            `json:"age"`
	Nationality   string         `json:"nationality" binding:"omitempty,max=100"`
	IDNumber      string         `json:"id_number" binding:"omitempty,max=100"`
	EventName     string         `json:"event_name" binding:"omitempty,max=255"`
	ImageURL      string         `json:"image_url"`
	ImagePosition *ImagePosition `json:"image_position,omitempty"`
	Languages     []string       `json:"languages"`
	Experience    []Experience   `json:"experience"`
	Email         string         `json:"email" binding:"omitempty,email,max=255"`
	Mobile        string         `json:"mobile" binding:"omitempty,max=50"`
	Theme         string         `json:"theme" binding:"omitempty,oneof=modern midnight emerald crimson executive horizon oceanic nebula"`
}

// SaveProfileRequest is the generator's save payload. A present ID means the
// session already holds a persisted record and the save must update it; an
// absent ID means insert.
type SaveProfileRequest struct {
	ID *uuid.UUID `json:"id,omitempty"`
	ProfileRequest
}

// ProfileResponse is the persisted record shape sent to clients.
type ProfileResponse struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Role          string         `json:"role"`
	Age           int            `json:"age"`
	Nationality   string         `json:"nationality"`
	IDNumber      string         `json:"id_number"`
	EventName     string         `json:"event_name"`
	ImageURL      string         `json:"image_url"`
	ImagePosition *ImagePosition `json:"image_position,omitempty"`
	Languages     []string       `json:"languages"`
	Experience    []Experience   `json:"experience"`
	Email         string         `json:"email,omitempty"`
	Mobile        string         `json:"mobile,omitempty"`
	Theme         string         `json:"theme"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToProfileResponse maps a stored profile to its API shape.
func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID,
		Name:          p.Name,
		Role:          p.Role,
		Age:           p.Age,
		Nationality:   p.Nationality,
		IDNumber:      p.IDNumber,
		EventName:     p.EventName,
		ImageURL:      p.ImageURL,
		ImagePosition: p.ImagePosition,
		Languages:     p.Languages,
		Experience:    p.Experience,
		Email:         p.Email,
		Mobile:        p.Mobile,
		Theme:         p.Theme,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ApplyRequest overlays the request payload onto the profile, defaulting the
// image to the placeholder and the theme to the default when blank.
func (p *Profile) ApplyRequest(req ProfileRequest, placeholderImageURL string) {
	p.Name = req.Name
	p.Role = req.Role
	p.Age = req.Age
	p.Nationality = req.Nationality
	p.IDNumber = req.IDNumber
	p.EventName = req.EventName
	p.ImageURL = req.ImageURL
	if p.ImageURL == "" {
		p.ImageURL = placeholderImageURL
	}
	p.ImagePosition = req.ImagePosition
	p.Languages = StringList(req.Languages)
	p.Experience = ExperienceList(req.Experience)
	p.Email = req.Email
	p.Mobile = req.Mobile
	p.Theme = req.Theme
	p.Normalize()
}
