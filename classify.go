package nova

import "strings"

// Icon is a symbolic tag describing what a category is about.
type Icon string

const (
	IconWallet     Icon = "wallet"
	IconBriefcase  Icon = "briefcase"
	IconTrendingUp Icon = "trending-up"
	IconGift       Icon = "gift"
	IconHome       Icon = "home"
	IconUtensils   Icon = "utensils"
	IconCar        Icon = "car"
	IconMovie      Icon = "clapperboard"
	IconHealth     Icon = "heart-pulse"
	IconShopping   Icon = "shopping-bag"
	IconReceipt    Icon = "receipt"
	IconUtility    Icon = "zap"
	IconShield     Icon = "shield"
	IconEducation  Icon = "graduation-cap"
	IconPlane      Icon = "plane"
	IconCoffee     Icon = "coffee"
	IconTech       Icon = "smartphone"
	IconMusic      Icon = "music"
	IconBook       Icon = "book"
	IconMore       Icon = "more"
	IconTag        Icon = "tag" // fallback
)

// keywords is searched in order; the first match wins.
var keywords = []struct {
	word string
	icon Icon
}{
	{"salaire", IconWallet},
	{"freelance", IconBriefcase},
	{"investissements", IconTrendingUp},
	{"cadeaux", IconGift},

	{"logement", IconHome},
	{"loyer", IconHome},
	{"maison", IconHome},
	{"alimentation", IconUtensils},
	{"restaurant", IconUtensils},
	{"courses", IconUtensils},
	{"transport", IconCar},
	{"voiture", IconCar},
	{"essence", IconCar},
	{"divertissement", IconMovie},
	{"loisirs", IconMovie},
	{"santé", IconHealth},
	{"médecin", IconHealth},
	{"pharmacie", IconHealth},
	{"shopping", IconShopping},
	{"vêtements", IconShopping},
	{"factures", IconReceipt},
	{"électricité", IconUtility},
	{"eau", IconUtility},
	{"internet", IconUtility},
	{"assurance", IconShield},
	{"éducation", IconEducation},
	{"formation", IconEducation},
	{"voyage", IconPlane},
	{"vacances", IconPlane},
	{"café", IconCoffee},
	{"tech", IconTech},
	{"musique", IconMusic},
	{"livres", IconBook},

	{"autre", IconMore},
	{"divers", IconMore},
}

// Classify returns the icon of a category name.
//
// The lower-cased name is first matched exactly against the keyword table,
// then against the first keyword it contains, in table order. Unknown names
// get IconTag.
func Classify(name string) Icon {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, k := range keywords {
		if k.word == key {
			return k.icon
		}
	}
	for _, k := range keywords {
		if strings.Contains(key, k.word) {
			return k.icon
		}
	}
	return IconTag
}
