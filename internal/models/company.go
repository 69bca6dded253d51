package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CompanyInfo is a freezone licence package extracted from provider documents.
type CompanyInfo struct {
	Name                 string   `json:"name"`
	Package              string   `json:"package"`
	NumberOfVisas        *int     `json:"number_of_visas"`
	NumberOfShareholders *int     `json:"number_of_shareholders"`
	OfficeRequired       *bool    `json:"office_required"`
	Cost                 *float64 `json:"cost"`
	Activity             *string  `json:"activity"`
}

// CompanyInfoList wraps extracted companies.
type CompanyInfoList struct {
	Companies []CompanyInfo `json:"companies"`
}

// Validate checks the fields every indexed package must carry.
func (c CompanyInfo) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(c.Package) == "" {
		errs = append(errs, errors.New("package is required"))
	}
	if c.NumberOfVisas != nil && *c.NumberOfVisas < 0 {
		errs = append(errs, errors.New("number_of_visas must not be negative"))
	}
	if c.NumberOfShareholders != nil && *c.NumberOfShareholders < 0 {
		errs = append(errs, errors.New("number_of_shareholders must not be negative"))
	}
	if c.Cost != nil && *c.Cost < 0 {
		errs = append(errs, errors.New("cost must not be negative"))
	}
	return errors.Join(errs...)
}

// Text renders the package as the document that gets embedded.
func (c CompanyInfo) Text() string {
	return fmt.Sprintf(
		"Name: %s; Package: %s; Number of Visas: %s; Number of Shareholders: %s; Office Required: %s; Cost: %s; Activity: %s",
		c.Name, c.Package,
		intString(c.NumberOfVisas), intString(c.NumberOfShareholders),
		boolString(c.OfficeRequired), floatString(c.Cost), stringOrUnknown(c.Activity),
	)
}

// Metadata returns the vector metadata for the package. Unset fields are
// omitted since vector stores reject null metadata values.
func (c CompanyInfo) Metadata() map[string]any {
	md := map[string]any{
		"name":    c.Name,
		"package": c.Package,
	}
	if c.NumberOfVisas != nil {
		md["number_of_visas"] = *c.NumberOfVisas
	}
	if c.NumberOfShareholders != nil {
		md["number_of_shareholders"] = *c.NumberOfShareholders
	}
	if c.OfficeRequired != nil {
		md["office_required"] = *c.OfficeRequired
	}
	if c.Cost != nil {
		md["cost"] = *c.Cost
	}
	if c.Activity != nil {
		md["activity"] = *c.Activity
	}
	return md
}

const unknown = "unknown"

func intString(v *int) string {
	if v == nil {
		return unknown
	}
	return strconv.Itoa(*v)
}

func floatString(v *float64) string {
	if v == nil {
		return unknown
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func boolString(v *bool) string {
	if v == nil {
		return unknown
	}
	return strconv.FormatBool(*v)
}

func stringOrUnknown(v *string) string {
	if v == nil {
		return unknown
	}
	return *v
}
