// Package types holds the data model the text pipeline and linker share:
// Context and Name. NameSet lives in internal/nameset.
package types

import (
	"strings"

	"github.com/roadlink/conflate/internal/text"
)

// Context carries the country/region a name belongs to plus the shared,
// read-only abbreviation table used to canonicalize its tokens.
type Context struct {
	Country string
	Region  string
	Table   *text.AbbreviationTable
}

// NewContext uppercases country/region and attaches table.
func NewContext(country, region string, table *text.AbbreviationTable) *Context {
	return &Context{
		Country: strings.ToUpper(country),
		Region:  strings.ToUpper(region),
		Table:   table,
	}
}

// RegionName returns the long-form name for ctx.Region within ctx.Country,
// and whether one is known. Used by the state/province highway generators.
func (c *Context) RegionName() (string, bool) {
	if c == nil || c.Region == "" {
		return "", false
	}
	switch c.Country {
	case "US":
		n, ok := usStateNames[c.Region]
		return n, ok
	case "CA":
		n, ok := caProvinceNames[c.Region]
		return n, ok
	}
	return "", false
}

var usStateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

var caProvinceNames = map[string]string{
	"ON": "Ontario", "QC": "Quebec", "NS": "Nova Scotia", "NB": "New Brunswick",
	"MB": "Manitoba", "BC": "British Columbia", "PE": "Prince Edward Island",
	"SK": "Saskatchewan", "AB": "Alberta", "NL": "Newfoundland and Labrador",
	"NT": "Northwest Territories", "YT": "Yukon", "NU": "Nunavut",
}
