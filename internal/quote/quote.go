// Package quote picks the ledger-themed quote shown on the overview.
package quote

import "time"

// Quote is a line of text and its attribution.
type Quote struct {
	Text   string
	Author string
}

var quotes = []Quote{
	{"A wise man doth not hoard his gold, but spendeth it with purpose and honour.", "The Code of the Ledger"},
	{"He who keepeth account of every coin shall never be a servant to debt.", "The Merchant's Creed"},
	{"Discipline in thy purse is the truest armour against the siege of ruin.", "Sir Edmund the Frugal"},
	{"Spend not thy silver on fleeting pleasures, but invest in the fortress of thy future.", "The Order of the Golden Quill"},
	{"A knight who knoweth his expenses fighteth not in the dark.", "The Treasury Scrolls"},
	{"Even the mightiest castle was built one stone, and one coin, at a time.", "The Builder's Proverb"},
	{"To master thy wealth is to master thyself; there is no greater conquest.", "The Sage of Ironhall"},
	{"Let every coin tell a tale of wisdom, not of folly.", "The Chronicler's Oath"},
	{"Guard thy gold as thou wouldst guard thy honour: with vigilance and resolve.", "The Shield-Bearer's Maxim"},
	{"The road to ruin is paved with untracked spending. Map thy journey, brave soul.", "The Pilgrim's Ledger"},
	{"Fear not the tally of thy debts. Face them, and they shall crumble like old ramparts.", "Lord Aldric the Steadfast"},
	{"A full treasury without a plan is but a dragon's hoard, useless and cursed.", "The Alchemist's Warning"},
}

// ForDay returns the quote for t's day of year. It changes once a day.
func ForDay(t time.Time) Quote {
	return quotes[t.YearDay()%len(quotes)]
}

// All returns every quote in rotation order.
func All() []Quote {
	out := make([]Quote, len(quotes))
	copy(out, quotes)
	return out
}
