package service

import (
	"context"
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"

	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/entity"
)

var (
	emailPattern     = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	phoneCandidateRe = regexp.MustCompile(`\+?\(?\d[\d\s\-().]{6,}\d`)
	idnaProfile      = idna.Lookup
)

const (
	trackingPrefix     = "utm_"
	defaultPhoneRegion = "MY"
	mxLookupTimeout    = 3 * time.Second
)

var trackingParams = map[string]struct{}{
	"fbclid": {},
	"gclid":  {},
	"mc_cid": {},
	"mc_eid": {},
}

// DNSResolver abstracts DNS lookups to simplify testing.
type DNSResolver interface {
	LookupMX(ctx context.Context, domain string) ([]*net.MX, error)
}

// ProfileValidator cleans company profile input before it reaches the store.
type ProfileValidator struct {
	DefaultRegion string
	dnsResolver   DNSResolver
}

// ProfileValidatorOption configures optional dependencies.
type ProfileValidatorOption func(*ProfileValidator)

// WithDNSResolver enables MX verification of email domains on profile edits.
func WithDNSResolver(resolver DNSResolver) ProfileValidatorOption {
	return func(p *ProfileValidator) {
		p.dnsResolver = resolver
	}
}

// NewProfileValidator builds a validator that parses phone numbers relative to defaultRegion.
func NewProfileValidator(defaultRegion string, opts ...ProfileValidatorOption) *ProfileValidator {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = defaultPhoneRegion
	}
	p := &ProfileValidator{DefaultRegion: region}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CleanProfile validates a profile edit and converts it into a store update.
func (p *ProfileValidator) CleanProfile(ctx context.Context, req dto.ProfileUpdateRequest) (entity.CompanyUpdate, error) {
	var update entity.CompanyUpdate

	if req.CompanyName != nil {
		name := strings.TrimSpace(*req.CompanyName)
		if name == "" {
			return update, ValidationError{Message: "company name must not be empty"}
		}
		update.Name = &name
	}
	if req.Sector != nil {
		sector := strings.TrimSpace(*req.Sector)
		update.Sector = &sector
	}
	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		update.Description = &desc
	}
	if req.WebsiteURL != nil {
		website, err := p.CleanWebsite(*req.WebsiteURL)
		if err != nil {
			return update, err
		}
		update.WebsiteURL = &website
	}
	if req.ContactInfo != nil {
		contact := p.NormalizeContactInfo(*req.ContactInfo)
		update.ContactInfo = &contact
	}
	if req.ProgramParticipation != nil {
		programs := strings.TrimSpace(*req.ProgramParticipation)
		update.ProgramParticipation = &programs
	}
	return update, nil
}

// CleanEmail normalises an email and, when a resolver is configured, checks the domain accepts mail.
func (p *ProfileValidator) CleanEmail(ctx context.Context, raw string) (string, error) {
	email, err := NormalizeEmail(raw)
	if err != nil {
		return "", err
	}
	if p.dnsResolver == nil {
		return email, nil
	}
	domain := email[strings.LastIndex(email, "@")+1:]
	if !p.hasMXRecord(ctx, domain) {
		return "", ValidationError{Message: "email domain does not accept mail"}
	}
	return email, nil
}

// NormalizeEmail lower-cases an email and checks its syntax and IDNA domain.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailPattern.MatchString(email) {
		return "", ValidationError{Message: "email address is invalid"}
	}
	parts := strings.SplitN(email, "@", 2)
	if !isDomainValid(parts[1]) {
		return "", ValidationError{Message: "email domain is invalid"}
	}
	if ascii, err := idnaProfile.ToASCII(parts[1]); err != nil || ascii == "" {
		return "", ValidationError{Message: "email domain is invalid"}
	}
	return email, nil
}

// CleanWebsite forces https and drops tracking parameters. A blank value clears the website.
func (p *ProfileValidator) CleanWebsite(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	u, err := sanitizeURL(raw)
	if err != nil {
		return "", ValidationError{Message: "website url is invalid"}
	}
	host, err := idnaProfile.ToASCII(u.Hostname())
	if err != nil || !isDomainValid(host) {
		return "", ValidationError{Message: "website domain is invalid"}
	}
	stripTracking(u)
	return u.String(), nil
}

// NormalizeContactInfo rewrites every parseable phone number in free-form contact text to E.164.
func (p *ProfileValidator) NormalizeContactInfo(raw string) string {
	text := strings.TrimSpace(raw)
	return phoneCandidateRe.ReplaceAllStringFunc(text, func(candidate string) string {
		if normalized := normalizePhone(candidate, p.DefaultRegion); normalized != "" {
			return normalized
		}
		return candidate
	})
}

func (p *ProfileValidator) hasMXRecord(ctx context.Context, domain string) bool {
	ascii, err := idnaProfile.ToASCII(domain)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, mxLookupTimeout)
	defer cancel()
	records, err := p.dnsResolver.LookupMX(ctx, ascii)
	return err == nil && len(records) > 0
}

func sanitizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, errors.New("invalid url")
	}
	u.Scheme = "https"
	return u, nil
}

func stripTracking(u *url.URL) {
	if u == nil {
		return
	}
	query := u.Query()
	changed := false
	for key := range query {
		lowered := strings.ToLower(key)
		if _, known := trackingParams[lowered]; known || strings.HasPrefix(lowered, trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}

// SystemDNSResolver resolves MX records through the default resolver.
type SystemDNSResolver struct{}

// LookupMX implements DNSResolver.
func (SystemDNSResolver) LookupMX(ctx context.Context, domain string) ([]*net.MX, error) {
	return net.DefaultResolver.LookupMX(ctx, domain)
}
