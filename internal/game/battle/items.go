package battle

// Held item identifiers the resolver models. Items outside this set are
// carried but inert.
const (
	ItemSoulDew = "soul-dew"

	ItemFigyBerry   = "figy-berry"
	ItemWikiBerry   = "wiki-berry"
	ItemMagoBerry   = "mago-berry"
	ItemAguavBerry  = "aguav-berry"
	ItemIapapaBerry = "iapapa-berry"
)

// confusionBerries are the pinch berries: they restore HP at low health and
// inflict confusion on the eater.
var confusionBerries = map[string]bool{
	ItemFigyBerry:   true,
	ItemWikiBerry:   true,
	ItemMagoBerry:   true,
	ItemAguavBerry:  true,
	ItemIapapaBerry: true,
}

// HoldsConfusionBerry reports whether c still holds a pinch berry.
func HoldsConfusionBerry(c *Combatant) bool {
	return confusionBerries[c.Item()]
}

// soulDewSpecies are the two species the Soul Dew boost applies to.
var soulDewSpecies = map[string]bool{
	"Latios": true,
	"Latias": true,
}

// SoulDewApplies reports whether c's held Soul Dew boosts its special stats.
// The boost is a flat +1 stage-equivalent multiplier on Special Attack and
// Special Defense for the two eon species only.
func SoulDewApplies(c *Combatant) bool {
	return c.Item() == ItemSoulDew && soulDewSpecies[c.Species]
}
