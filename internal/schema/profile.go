package schema

import (
	"slices"
	"strings"

	"blog-api/internal/domain"
	v "blog-api/internal/validation"
)

// countryCodes are the ISO 3166-1 alpha-2 codes.
var countryCodes = strings.Fields(`
AD AE AF AG AI AL AM AO AQ AR AS AT AU AW AX AZ BA BB BD BE BF BG BH BI BJ BL BM BN BO BQ BR BS
BT BV BW BY BZ CA CC CD CF CG CH CI CK CL CM CN CO CR CU CV CW CX CY CZ DE DJ DK DM DO DZ EC EE
EG EH ER ES ET FI FJ FK FM FO FR GA GB GD GE GF GG GH GI GL GM GN GP GQ GR GS GT GU GW GY HK HM
HN HR HT HU ID IE IL IM IN IO IQ IR IS IT JE JM JO JP KE KG KH KI KM KN KP KR KW KY KZ LA LB LC
LI LK LR LS LT LU LV LY MA MC MD ME MF MG MH MK ML MM MN MO MP MQ MR MS MT MU MV MW MX MY MZ NA
NC NE NF NG NI NL NO NP NR NU NZ OM PA PE PF PG PH PK PL PM PN PR PS PT PW PY QA RE RO RS RU RW
SA SB SC SD SE SG SH SI SJ SK SL SM SN SO SR SS ST SV SX SY SZ TC TD TF TG TH TJ TK TL TM TN TO
TR TT TV TW TZ UA UG UM US UY UZ VA VC VE VG VI VN VU WF WS YE YT ZA ZM ZW
`)

// IsCountryCode reports whether code is an ISO 3166-1 alpha-2 code.
func IsCountryCode(code string) bool {
	_, found := slices.BinarySearch(countryCodes, code)
	return found
}

// UpdateProfile validates PATCH /users/me/profile. Every field is optional
// but at least one must be present.
func UpdateProfile(raw any) v.Result[domain.ProfileUpdate] {
	f := v.NewFields(raw)
	u := domain.ProfileUpdate{
		Name: f.OptionalString("name",
			v.Trim(),
			v.MinLen(3, "Name must be at least 3 characters long"),
			v.MaxLen(50, "Name must be at most 50 characters long"),
		),
		Role: f.OptionalString("role",
			v.Trim(),
			v.MinLen(3, "Title must be at least 3 characters long"),
			v.MaxLen(100, "Title must be at most 100 characters long"),
		),
		Bio: f.OptionalString("bio",
			v.MinLen(3, "Bio must be at least 3 characters long"),
			v.MaxLen(500, "Bio must be at most 500 characters long"),
		),
		Website: f.OptionalString("website",
			v.Trim(),
			v.HTTPSURL("Website URL must be a valid https URL"),
		),
		Country: f.OptionalString("country",
			v.Trim(),
			func(s string) (string, *v.Issue) { return strings.ToUpper(s), nil },
			v.Check(IsCountryCode, "ISO 3166-1 alpha-2", "Provided country code is invalid"),
		),
		ProfileImage: f.OptionalString("profileImage",
			v.Trim(),
			v.HTTPSURL("Profile image URL must be a valid https URL"),
		),
	}
	f.Check("", !u.Empty(), "No fields to update")
	return v.Finish(f, u)
}
