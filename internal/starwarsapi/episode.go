package starwarsapi

// Episode is one of the films in the Star Wars trilogy.
type Episode string

const (
	// Star Wars Episode IV: A New Hope, released in 1977.
	EpisodeNewhope Episode = "NEWHOPE"
	// Star Wars Episode V: The Empire Strikes Back, released in 1980.
	EpisodeEmpire Episode = "EMPIRE"
	// Star Wars Episode VI: Return of the Jedi, released in 1983.
	EpisodeJedi Episode = "JEDI"
)

func (e Episode) IsKnown() bool {
	switch e {
	case EpisodeNewhope, EpisodeEmpire, EpisodeJedi:
		return true
	}
	return false
}
