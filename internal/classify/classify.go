package classify

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"dnb_digest/internal/models"
)

// positive keywords mark genre relevance for items from generic sources.
var positive = []string{
	"drum and bass", "drum & bass", "drum'n'bass", "drumandbass", "dnb",
	"d'n'b", "jungle", "neurofunk", "liquid funk", "jump up", "174",
	"breakbeat", "junglist",
}

// negative keywords reject items even from allowlisted genre sites.
var negative = []string{
	"techno", "tech house", "deep house", "progressive house", "trance",
	"hardstyle", "psytrance", "dubstep",
}

// domesticTokens gate the domestic section: a Czech/Slovak item still
// has to carry a genre or scene token to qualify.
var domesticTokens = []string{
	"dnb", "drum and bass", "drum & bass", "drumandbass", "jungle",
	"neurofunk", "let it roll", "hoofbeats", "liquid", "rave",
}

// genreDomains are dedicated genre sites whose items pass without a
// positive keyword.
var genreDomains = []string{
	"ukf.com", "dnbdojo.co.uk", "inreachmag.com", "dogsonacid.com",
	"reddit.com", "rave.cz", "letitroll.cz", "hoofbeats.cz",
}

// domesticDomains force the domestic bucket regardless of TLD.
var domesticDomains = []string{
	"rave.cz", "musicserver.cz", "letitroll.cz", "hoofbeats.cz",
	"goout.net",
}

// Relevant reports whether an item belongs in the digest at all.
// Allowlisted domains pass unless an explicit negative keyword is
// present; everything else needs a positive keyword and no negative.
func Relevant(it models.Item) bool {
	text := strings.ToLower(it.Title + " " + it.Summary)
	if containsAny(text, negative) {
		return false
	}
	if onDomain(it.Link, genreDomains) {
		return true
	}
	return containsAny(text, positive)
}

// Region buckets an item as domestic or international. Social items
// keep their section. An item from a Czech/Slovak source whose link
// points at an unrecognized domain inherits the source's domestic
// default; known foreign genre sites override it. Domestic items
// additionally require a domestic scene token.
func Region(it models.Item, domesticSource bool) models.Section {
	if it.Section == models.SectionSocial {
		return models.SectionSocial
	}
	home := domestic(it.Link)
	if !home && domesticSource && !onDomain(it.Link, genreDomains) {
		home = true
	}
	if !home {
		return models.SectionInternational
	}
	text := strings.ToLower(it.Title + " " + it.Summary)
	if containsAny(text, domesticTokens) {
		return models.SectionDomestic
	}
	return models.SectionInternational
}

func domestic(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	if strings.HasSuffix(host, ".cz") || strings.HasSuffix(host, ".sk") {
		return true
	}
	return onDomain(link, domesticDomains)
}

func onDomain(link string, domains []string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Host, "www."))
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if ContainsToken(text, n) {
			return true
		}
	}
	return false
}

// ContainsToken reports whether token occurs in text bounded by
// non-alphanumeric runes. Short tokens like "ai" or "dnb" would
// otherwise match inside ordinary words ("again", "standnby").
func ContainsToken(text, token string) bool {
	if token == "" {
		return false
	}
	for from := 0; from+len(token) <= len(text); {
		i := strings.Index(text[from:], token)
		if i < 0 {
			return false
		}
		i += from
		if boundaryBefore(text[:i]) && boundaryAfter(text[i+len(token):]) {
			return true
		}
		from = i + 1
	}
	return false
}

func boundaryBefore(prefix string) bool {
	if prefix == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(prefix)
	return !isWordRune(r)
}

func boundaryAfter(suffix string) bool {
	if suffix == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(suffix)
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
