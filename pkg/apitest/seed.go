package apitest

import "tableflip.dev/pokebox/pkg/pokemon"

// Catalog is a small first-generation catalog used when no species are
// configured.
func Catalog() []pokemon.Species {
	return []pokemon.Species{
		{PokedexID: 1, Name: "Bisasam", Type1: "Pflanze", Type2: "Gift"},
		{PokedexID: 2, Name: "Bisaknosp", Type1: "Pflanze", Type2: "Gift"},
		{PokedexID: 3, Name: "Bisaflor", Type1: "Pflanze", Type2: "Gift"},
		{PokedexID: 4, Name: "Glumanda", Type1: "Feuer"},
		{PokedexID: 5, Name: "Glutexo", Type1: "Feuer"},
		{PokedexID: 6, Name: "Glurak", Type1: "Feuer", Type2: "Flug"},
		{PokedexID: 7, Name: "Schiggy", Type1: "Wasser"},
		{PokedexID: 8, Name: "Schillok", Type1: "Wasser"},
		{PokedexID: 9, Name: "Turtok", Type1: "Wasser"},
		{PokedexID: 16, Name: "Taubsi", Type1: "Normal", Type2: "Flug"},
		{PokedexID: 17, Name: "Tauboga", Type1: "Normal", Type2: "Flug"},
		{PokedexID: 18, Name: "Tauboss", Type1: "Normal", Type2: "Flug"},
		{PokedexID: 25, Name: "Pikachu", Type1: "Elektro"},
		{PokedexID: 26, Name: "Raichu", Type1: "Elektro"},
		{PokedexID: 129, Name: "Karpador", Type1: "Wasser"},
		{PokedexID: 130, Name: "Garados", Type1: "Wasser", Type2: "Flug"},
		{PokedexID: 133, Name: "Evoli", Type1: "Normal"},
		{PokedexID: 134, Name: "Aquana", Type1: "Wasser"},
		{PokedexID: 135, Name: "Blitza", Type1: "Elektro"},
		{PokedexID: 136, Name: "Flamara", Type1: "Feuer"},
	}
}

// Rules are the evolutions allowed within Catalog.
func Rules() pokemon.EvolutionRules {
	return pokemon.EvolutionRules{
		1:   {2},
		2:   {3},
		4:   {5},
		5:   {6},
		7:   {8},
		8:   {9},
		16:  {17},
		17:  {18},
		25:  {26},
		129: {130},
		133: {134, 135, 136},
	}
}

// Demo is a small collection spread over two editions.
func Demo() []pokemon.OwnedEntry {
	return []pokemon.OwnedEntry{
		{PokedexID: 25, Nickname: "Blitz", Level: 12, Edition: "GELB", BoxName: "TEAM"},
		{PokedexID: 1, Level: 5, Edition: "GELB", BoxName: "TEAM"},
		{PokedexID: 16, Nickname: "Piepmatz", Level: 9, Edition: "GELB", BoxName: "BOX1"},
		{PokedexID: 129, Level: 3, Edition: "GELB", BoxName: "BOX1"},
		{PokedexID: 4, Nickname: "Funke", Level: 14, Edition: "ROT", BoxName: "TEAM"},
		{PokedexID: 133, Level: 20, Edition: "ROT", BoxName: "BOX2"},
	}
}
