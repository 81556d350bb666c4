package browser

// Swipe-surface selectors. The site renders its controls with stable
// aria-labels while class names are minified, so everything anchors on
// accessibility attributes.
const (
	selLike      = `[aria-label="Like"]`
	selNope      = `[aria-label="Nope"]`
	selSuperLike = `[aria-label="Super Like"]`

	// Match confirmation has no stable attribute; located by its text.
	xpathMatchPopup = `//*[contains(text(), "It's a Match!")]`
	selMatchClose   = `[aria-label="Close"]`

	selProfileName = `span[itemprop="name"]`
	selProfileAge  = `span[itemprop="age"]`
	selProfileBio  = `div[class*="Bdrs"]`
)
