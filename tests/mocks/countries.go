package mocks

import "github.com/joefazee/atlas/models"

// Country builds a minimal but valid country for handler and service tests.
func Country(cca3, cca2, common, region string, languages map[string]string) models.Country {
	return models.Country{
		Name:       models.CountryName{Common: common, Official: "Republic of " + common},
		CCA2:       cca2,
		CCA3:       cca3,
		Region:     region,
		Languages:  languages,
		Population: 1000000,
		Area:       1000,
		Capital:    []string{common + " City"},
		Flags:      models.Flags{PNG: "https://flagcdn.com/w320/" + cca2 + ".png", SVG: "https://flagcdn.com/" + cca2 + ".svg"},
	}
}

func France() models.Country {
	c := Country("FRA", "FR", "France", "Europe", map[string]string{"fra": "French"})
	c.Name.Official = "French Republic"
	c.Population = 67391582
	c.Area = 551695
	c.Capital = []string{"Paris"}
	c.Borders = []string{"AND", "BEL", "DEU"}
	c.Currencies = map[string]models.Currency{"EUR": {Name: "Euro", Symbol: "€"}}
	return c
}

func Japan() models.Country {
	c := Country("JPN", "JP", "Japan", "Asia", map[string]string{"jpn": "Japanese"})
	c.Name.Official = "Japan"
	c.Capital = []string{"Tokyo"}
	return c
}
