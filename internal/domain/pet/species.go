package pet

// Species is the closed set of adoptable pet kinds. The adoption cost of a
// non-starter species is its unlock level times AdoptionCostPerLevel.
type Species string

const (
	SpeciesCat          Species = "cat"
	SpeciesDog          Species = "dog"
	SpeciesFox          Species = "fox"
	SpeciesBird         Species = "bird"
	SpeciesRabbit       Species = "rabbit"
	SpeciesBear         Species = "bear"
	SpeciesPanda        Species = "panda"
	SpeciesKoala        Species = "koala"
	SpeciesHamster      Species = "hamster"
	SpeciesMouse        Species = "mouse"
	SpeciesPig          Species = "pig"
	SpeciesFrog         Species = "frog"
	SpeciesMonkey       Species = "monkey"
	SpeciesLion         Species = "lion"
	SpeciesTiger        Species = "tiger"
	SpeciesCow          Species = "cow"
	SpeciesTurkey       Species = "turkey"
	SpeciesDragon       Species = "dragon"
	SpeciesShark        Species = "shark"
	SpeciesSeal         Species = "seal"
	SpeciesCrocodile    Species = "crocodile"
	SpeciesFlamingo     Species = "flamingo"
	SpeciesDuck         Species = "duck"
	SpeciesTurtle       Species = "turtle"
	SpeciesButterfly    Species = "butterfly"
	SpeciesElephant     Species = "elephant"
	SpeciesGiraffe      Species = "giraffe"
	SpeciesDinosaur     Species = "dinosaur"
	SpeciesCrab         Species = "crab"
	SpeciesLobster      Species = "lobster"
	SpeciesShrimp       Species = "shrimp"
	SpeciesSquid        Species = "squid"
	SpeciesOctopus      Species = "octopus"
	SpeciesPufferfish   Species = "pufferfish"
	SpeciesEagle        Species = "eagle"
	SpeciesOwl          Species = "owl"
	SpeciesBat          Species = "bat"
	SpeciesBee          Species = "bee"
	SpeciesUnicorn      Species = "unicorn"
	SpeciesBoar         Species = "boar"
	SpeciesDolphin      Species = "dolphin"
	SpeciesWhale        Species = "whale"
	SpeciesLeopard      Species = "leopard"
	SpeciesSwan         Species = "swan"
	SpeciesParrot       Species = "parrot"
	SpeciesBadger       Species = "badger"
	SpeciesRat          Species = "rat"
	SpeciesSquirrel     Species = "squirrel"
	SpeciesHedgehog     Species = "hedgehog"
	SpeciesRhino        Species = "rhino"
	SpeciesWaterBuffalo Species = "waterbuffalo"
	SpeciesKangaroo     Species = "kangaroo"
	SpeciesCamel        Species = "camel"
	SpeciesDromedary    Species = "dromedary"
	SpeciesOx           Species = "ox"
	SpeciesHorse        Species = "horse"
	SpeciesRam          Species = "ram"
	SpeciesDeer         Species = "deer"
	SpeciesGoat         Species = "goat"
	SpeciesSheep        Species = "sheep"
)

// SpeciesUnlockLevels gates adoption: a user may adopt a species only once
// one of their pets has reached its unlock level. Level-1 species are free.
var SpeciesUnlockLevels = map[Species]int{
	SpeciesCat: 1, SpeciesDog: 1,
	SpeciesBird: 5, SpeciesHamster: 5, SpeciesRabbit: 5,
	SpeciesDuck: 8, SpeciesButterfly: 8, SpeciesBee: 8,
	SpeciesMouse: 10, SpeciesPig: 10, SpeciesFrog: 10,
	SpeciesRat: 12, SpeciesSquirrel: 12, SpeciesHedgehog: 12,
	SpeciesFox: 15, SpeciesBear: 15, SpeciesTurtle: 15,
	SpeciesOwl: 18, SpeciesBat: 18, SpeciesParrot: 18,
	SpeciesPanda: 20, SpeciesKoala: 20, SpeciesBadger: 20,
	SpeciesDeer: 22, SpeciesGoat: 22, SpeciesSheep: 22,
	SpeciesMonkey: 25, SpeciesBoar: 25,
	SpeciesKangaroo: 28, SpeciesHorse: 28,
	SpeciesLion: 30, SpeciesTiger: 30, SpeciesLeopard: 30,
	SpeciesCrocodile: 32, SpeciesEagle: 32,
	SpeciesCow: 35, SpeciesTurkey: 35, SpeciesOx: 35, SpeciesRam: 35,
	SpeciesCamel: 38, SpeciesDromedary: 38,
	SpeciesFlamingo: 40, SpeciesShark: 40, SpeciesSeal: 40, SpeciesDolphin: 40,
	SpeciesSwan: 42,
	SpeciesPufferfish: 45, SpeciesOctopus: 45, SpeciesSquid: 45,
	SpeciesCrab: 48, SpeciesLobster: 48, SpeciesShrimp: 48,
	SpeciesElephant: 50, SpeciesGiraffe: 50,
	SpeciesRhino: 55, SpeciesWaterBuffalo: 55,
	SpeciesWhale: 60,
	SpeciesDinosaur: 70,
	SpeciesUnicorn: 80,
	SpeciesDragon: 100,
}

// MutationSpecies is the crown-mutation reroll pool. It ignores unlock
// gating on purpose; dragon and seal never come out of a mutation.
var MutationSpecies = []Species{
	SpeciesCat, SpeciesDog, SpeciesFox, SpeciesBird, SpeciesRabbit,
	SpeciesBear, SpeciesPanda, SpeciesKoala, SpeciesHamster, SpeciesMouse,
	SpeciesPig, SpeciesFrog, SpeciesMonkey, SpeciesLion, SpeciesTiger,
	SpeciesCow, SpeciesTurkey, SpeciesShark, SpeciesCrocodile,
	SpeciesFlamingo, SpeciesDuck, SpeciesTurtle, SpeciesButterfly,
	SpeciesElephant, SpeciesGiraffe, SpeciesDinosaur, SpeciesCrab,
	SpeciesLobster, SpeciesShrimp, SpeciesSquid, SpeciesOctopus,
	SpeciesPufferfish, SpeciesEagle, SpeciesOwl, SpeciesBat, SpeciesBee,
	SpeciesUnicorn, SpeciesBoar, SpeciesDolphin, SpeciesWhale,
	SpeciesLeopard, SpeciesSwan, SpeciesParrot, SpeciesBadger, SpeciesRat,
	SpeciesSquirrel, SpeciesHedgehog, SpeciesRhino, SpeciesWaterBuffalo,
	SpeciesKangaroo, SpeciesCamel, SpeciesDromedary, SpeciesOx,
	SpeciesHorse, SpeciesRam, SpeciesDeer, SpeciesGoat, SpeciesSheep,
}

func ValidSpecies(s Species) bool {
	_, ok := SpeciesUnlockLevels[s]
	return ok
}

// AdoptionCost returns the coin cost of adopting a species. Starter
// species (unlock level 1) are free.
func AdoptionCost(s Species) int {
	level := SpeciesUnlockLevels[s]
	if level <= 1 {
		return 0
	}
	return level * AdoptionCostPerLevel
}
