// internal/domain/models/club.go
package models

import (
	"net/url"
	"strings"
	"time"

	"github.com/campus-council/clubs/internal/app/system/apperr"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Club lifecycle states.
const (
	StateActive  = "active"
	StateDeleted = "deleted"
)

// Club categories.
const (
	CategoryCultural  = "cultural"
	CategoryTechnical = "technical"
	CategoryAffinity  = "affinity"
	CategoryOther     = "other"
)

const (
	clubCodeMinLen    = 2
	clubCodeMaxLen    = 15
	clubNameMinLen    = 5
	clubNameMaxLen    = 100
	clubTaglineMinLen = 2
	clubTaglineMaxLen = 200
	clubDescMaxLen    = 9999
)

// strict strips every HTML element; club free text is plain text on the
// wire.
var strict = bluemonday.StrictPolicy()

// Socials holds a club's social profile links. All optional.
type Socials struct {
	Website    string   `bson:"website,omitempty" json:"website,omitempty"`
	Instagram  string   `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook   string   `bson:"facebook,omitempty" json:"facebook,omitempty"`
	YouTube    string   `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter    string   `bson:"twitter,omitempty" json:"twitter,omitempty"`
	LinkedIn   string   `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Discord    string   `bson:"discord,omitempty" json:"discord,omitempty"`
	WhatsApp   string   `bson:"whatsapp,omitempty" json:"whatsapp,omitempty"`
	OtherLinks []string `bson:"other_links,omitempty" json:"other_links,omitempty"`
}

// Club is a club profile document. The cid is derived from the club email's
// local part and doubles as the club service account's uid.
type Club struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CID          string             `bson:"cid" json:"cid"`
	Code         string             `bson:"code" json:"code"`
	State        string             `bson:"state" json:"state"`
	Category     string             `bson:"category" json:"category"`
	StudentBody  bool               `bson:"student_body" json:"student_body"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Logo         string             `bson:"logo,omitempty" json:"logo,omitempty"`
	Banner       string             `bson:"banner,omitempty" json:"banner,omitempty"`
	BannerSquare string             `bson:"banner_square,omitempty" json:"banner_square,omitempty"`
	Tagline      string             `bson:"tagline,omitempty" json:"tagline,omitempty"`
	Description  string             `bson:"description" json:"description"`
	Socials      Socials            `bson:"socials" json:"socials"`
	CreatedTime  time.Time          `bson:"created_time" json:"created_time"`
	UpdatedTime  time.Time          `bson:"updated_time" json:"updated_time"`
}

// CIDFromEmail derives a club's cid from the local part of its email.
func CIDFromEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return strings.ToLower(email)
	}
	return strings.ToLower(email[:at])
}

// ValidateEmail checks that the address belongs to one of the allowed
// institutional domains and lowercases it.
func ValidateEmail(email string, allowedDomains []string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "", apperr.ConstraintViolation("invalid email address")
	}
	domain := email[at+1:]
	for _, d := range allowedDomains {
		if domain == strings.ToLower(strings.TrimSpace(d)) {
			return email, nil
		}
	}
	return "", apperr.ConstraintViolation("official institute emails only")
}

func validLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate checks the socials block: every link must be an absolute http(s)
// URL and other_links must be duplicate-free.
func (s *Socials) Validate() error {
	links := []*string{
		&s.Website, &s.Instagram, &s.Facebook, &s.YouTube,
		&s.Twitter, &s.LinkedIn, &s.Discord, &s.WhatsApp,
	}
	for _, l := range links {
		*l = strings.TrimSpace(*l)
		if *l != "" && !validLink(*l) {
			return apperr.ConstraintViolation("invalid social link: %s", *l)
		}
	}

	seen := make(map[string]struct{}, len(s.OtherLinks))
	for i, l := range s.OtherLinks {
		l = strings.TrimSpace(l)
		s.OtherLinks[i] = l
		if !validLink(l) {
			return apperr.ConstraintViolation("invalid social link: %s", l)
		}
		if _, dup := seen[l]; dup {
			return apperr.ConstraintViolation("duplicate URLs are not allowed in other_links")
		}
		seen[l] = struct{}{}
	}
	return nil
}

// Validate normalizes and checks the club document. Free-text fields are
// sanitized to plain text. allowedDomains comes from configuration.
func (c *Club) Validate(allowedDomains []string) error {
	c.Code = strings.TrimSpace(c.Code)
	c.Name = strings.TrimSpace(c.Name)
	c.Tagline = strict.Sanitize(strings.TrimSpace(c.Tagline))
	c.Description = strict.Sanitize(strings.TrimSpace(c.Description))

	if len(c.Code) < clubCodeMinLen || len(c.Code) > clubCodeMaxLen {
		return apperr.ConstraintViolation("code must be %d-%d characters", clubCodeMinLen, clubCodeMaxLen)
	}
	if len(c.Name) < clubNameMinLen || len(c.Name) > clubNameMaxLen {
		return apperr.ConstraintViolation("name must be %d-%d characters", clubNameMinLen, clubNameMaxLen)
	}

	email, err := ValidateEmail(c.Email, allowedDomains)
	if err != nil {
		return err
	}
	c.Email = email
	c.CID = strings.ToLower(strings.TrimSpace(c.CID))
	if c.CID == "" {
		c.CID = CIDFromEmail(c.Email)
	}

	switch c.State {
	case "":
		c.State = StateActive
	case StateActive, StateDeleted:
	default:
		return apperr.ConstraintViolation("unknown state %q", c.State)
	}

	switch c.Category {
	case "":
		c.Category = CategoryOther
	case CategoryCultural, CategoryTechnical, CategoryAffinity, CategoryOther:
	default:
		return apperr.ConstraintViolation("unknown category %q", c.Category)
	}

	if c.Tagline != "" && (len(c.Tagline) < clubTaglineMinLen || len(c.Tagline) > clubTaglineMaxLen) {
		return apperr.ConstraintViolation("tagline must be %d-%d characters", clubTaglineMinLen, clubTaglineMaxLen)
	}
	if c.Description == "" {
		c.Description = "No Description Provided!"
	}
	if len(c.Description) > clubDescMaxLen {
		return apperr.ConstraintViolation("description exceeds %d characters", clubDescMaxLen)
	}

	return c.Socials.Validate()
}
