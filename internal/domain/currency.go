package domain

import "fmt"

type Currency struct {
	Platinum int `json:"platinum"`
	Gold     int `json:"gold"`
	Electrum int `json:"electrum"`
	Silver   int `json:"silver"`
	Copper   int `json:"copper"`
}

func (c Currency) IsZero() bool {
	return c == Currency{}
}

func (c Currency) Add(other Currency) Currency {
	return Currency{
		Platinum: c.Platinum + other.Platinum,
		Gold:     c.Gold + other.Gold,
		Electrum: c.Electrum + other.Electrum,
		Silver:   c.Silver + other.Silver,
		Copper:   c.Copper + other.Copper,
	}
}

// Sub removes other from c denomination by denomination, never going below zero.
// It returns the remaining purse and what was actually taken.
func (c Currency) Sub(other Currency) (Currency, Currency) {
	take := func(have, want int) (int, int) {
		if want <= 0 {
			return have, 0
		}
		taken := min(have, want)
		return have - taken, taken
	}

	var rest, taken Currency
	rest.Platinum, taken.Platinum = take(c.Platinum, other.Platinum)
	rest.Gold, taken.Gold = take(c.Gold, other.Gold)
	rest.Electrum, taken.Electrum = take(c.Electrum, other.Electrum)
	rest.Silver, taken.Silver = take(c.Silver, other.Silver)
	rest.Copper, taken.Copper = take(c.Copper, other.Copper)
	return rest, taken
}

func (c Currency) Validate() error {
	if c.Platinum < 0 || c.Gold < 0 || c.Electrum < 0 || c.Silver < 0 || c.Copper < 0 {
		return fmt.Errorf("%w: currency amounts must not be negative", ErrValidation)
	}
	return nil
}

func (c Currency) String() string {
	return fmt.Sprintf("%dpp %dgp %dep %dsp %dcp", c.Platinum, c.Gold, c.Electrum, c.Silver, c.Copper)
}
