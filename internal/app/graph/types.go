// internal/app/graph/types.go
package graph

import (
	"github.com/campus-council/clubs/internal/domain/models"
)

// MemberResolver wraps a membership document for the wire.
type MemberResolver struct {
	m models.Member
}

func (r *MemberResolver) Cid() string { return r.m.CID }
func (r *MemberResolver) Uid() string { return r.m.UID }
func (r *MemberResolver) Poc() bool   { return r.m.POC }

func (r *MemberResolver) Roles() []*RoleResolver {
	out := make([]*RoleResolver, len(r.m.Roles))
	for i := range r.m.Roles {
		out[i] = &RoleResolver{r: r.m.Roles[i]}
	}
	return out
}

// RoleResolver wraps one role entry.
type RoleResolver struct {
	r models.Role
}

// Rid is null only before the first id assignment pass.
func (r *RoleResolver) Rid() *string {
	if r.r.RID == "" {
		return nil
	}
	rid := r.r.RID
	return &rid
}

func (r *RoleResolver) Name() string     { return r.r.Name }
func (r *RoleResolver) StartYear() int32 { return int32(r.r.StartYear) }

func (r *RoleResolver) EndYear() *int32 {
	if r.r.EndYear == nil {
		return nil
	}
	y := int32(*r.r.EndYear)
	return &y
}

func (r *RoleResolver) Approved() bool { return r.r.Approved }
func (r *RoleResolver) Rejected() bool { return r.r.Rejected }
func (r *RoleResolver) Deleted() bool  { return r.r.Deleted }

// ClubResolver wraps a club profile document.
type ClubResolver struct {
	c models.Club
}

func (r *ClubResolver) Cid() string       { return r.c.CID }
func (r *ClubResolver) Code() string      { return r.c.Code }
func (r *ClubResolver) State() string     { return r.c.State }
func (r *ClubResolver) Category() string  { return r.c.Category }
func (r *ClubResolver) StudentBody() bool { return r.c.StudentBody }
func (r *ClubResolver) Name() string      { return r.c.Name }
func (r *ClubResolver) Email() string     { return r.c.Email }

func (r *ClubResolver) Logo() *string         { return optional(r.c.Logo) }
func (r *ClubResolver) Banner() *string       { return optional(r.c.Banner) }
func (r *ClubResolver) BannerSquare() *string { return optional(r.c.BannerSquare) }
func (r *ClubResolver) Tagline() *string      { return optional(r.c.Tagline) }
func (r *ClubResolver) Description() string   { return r.c.Description }

func (r *ClubResolver) Socials() *SocialsResolver {
	return &SocialsResolver{s: r.c.Socials}
}

// SocialsResolver wraps a club's social links.
type SocialsResolver struct {
	s models.Socials
}

func (r *SocialsResolver) Website() *string   { return optional(r.s.Website) }
func (r *SocialsResolver) Instagram() *string { return optional(r.s.Instagram) }
func (r *SocialsResolver) Facebook() *string  { return optional(r.s.Facebook) }
func (r *SocialsResolver) Youtube() *string   { return optional(r.s.YouTube) }
func (r *SocialsResolver) Twitter() *string   { return optional(r.s.Twitter) }
func (r *SocialsResolver) Linkedin() *string  { return optional(r.s.LinkedIn) }
func (r *SocialsResolver) Discord() *string   { return optional(r.s.Discord) }
func (r *SocialsResolver) Whatsapp() *string  { return optional(r.s.WhatsApp) }

func (r *SocialsResolver) OtherLinks() []string {
	if r.s.OtherLinks == nil {
		return []string{}
	}
	return r.s.OtherLinks
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// RoleInput is the wire shape of one role grant.
type RoleInput struct {
	Name      string
	StartYear int32
	EndYear   *int32
}

func (in RoleInput) toModel() models.Role {
	r := models.Role{
		Name:      in.Name,
		StartYear: int(in.StartYear),
	}
	if in.EndYear != nil {
		y := int(*in.EndYear)
		r.EndYear = &y
	}
	return r
}

// SocialsInput is the wire shape of a club's social links.
type SocialsInput struct {
	Website    *string
	Instagram  *string
	Facebook   *string
	Youtube    *string
	Twitter    *string
	Linkedin   *string
	Discord    *string
	Whatsapp   *string
	OtherLinks *[]string
}

func (in *SocialsInput) toModel() models.Socials {
	if in == nil {
		return models.Socials{}
	}
	s := models.Socials{
		Website:   deref(in.Website),
		Instagram: deref(in.Instagram),
		Facebook:  deref(in.Facebook),
		YouTube:   deref(in.Youtube),
		Twitter:   deref(in.Twitter),
		LinkedIn:  deref(in.Linkedin),
		Discord:   deref(in.Discord),
		WhatsApp:  deref(in.Whatsapp),
	}
	if in.OtherLinks != nil {
		s.OtherLinks = *in.OtherLinks
	}
	return s
}

// ClubInput is the wire shape of a club create/edit.
type ClubInput struct {
	Cid          *string
	Code         string
	Name         string
	Email        string
	Category     *string
	StudentBody  *bool
	Logo         *string
	Banner       *string
	BannerSquare *string
	Tagline      *string
	Description  *string
	Socials      *SocialsInput
}

func (in ClubInput) toModel() models.Club {
	c := models.Club{
		CID:          deref(in.Cid),
		Code:         in.Code,
		Name:         in.Name,
		Email:        in.Email,
		Category:     deref(in.Category),
		Logo:         deref(in.Logo),
		Banner:       deref(in.Banner),
		BannerSquare: deref(in.BannerSquare),
		Tagline:      deref(in.Tagline),
		Description:  deref(in.Description),
		Socials:      in.Socials.toModel(),
	}
	if in.StudentBody != nil {
		c.StudentBody = *in.StudentBody
	}
	return c
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
