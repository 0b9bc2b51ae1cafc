package text

// TokenCategory classifies a canonicalized token. CategoryNone means the
// token carries no special meaning to the linker (it is part of the
// "tokenless" distinctive remainder of a name).
type TokenCategory string

const (
	CategoryNone       TokenCategory = ""
	CategoryWay        TokenCategory = "way"
	CategoryCardinal   TokenCategory = "cardinal"
	CategoryNumber     TokenCategory = "number"
	CategoryPostalBox  TokenCategory = "postal_box"
	CategoryUnit       TokenCategory = "unit"
	CategoryDeterminer TokenCategory = "determiner"
)

// Token is one canonicalized, categorized piece of a name.
type Token struct {
	Token    string
	Category TokenCategory
}
