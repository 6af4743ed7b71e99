package domain

import (
	"fmt"
	"regexp"
)

var (
	hashPattern   = regexp.MustCompile(`^[a-f0-9]{40}$`)
	imdbIDPattern = regexp.MustCompile(`^tt[0-9]{7,8}$`)
)

// ValidateHash checks that a media hash is exactly 40 lowercase hex chars.
func ValidateHash(hash string) error {
	if !hashPattern.MatchString(hash) {
		return fmt.Errorf("hash must be a 40-character lowercase hexadecimal string, got %q", hash)
	}
	return nil
}

// ValidateIMDBID checks the tt-prefixed 7-8 digit identifier format.
func ValidateIMDBID(id string) error {
	if !imdbIDPattern.MatchString(id) {
		return fmt.Errorf("imdb_id must match tt followed by 7-8 digits, got %q", id)
	}
	return nil
}

// ValidateReleaseYear checks the accepted release-year range.
func ValidateReleaseYear(year int) error {
	if year < 1850 || year > 2100 {
		return fmt.Errorf("release_year must be between 1850 and 2100, got %d", year)
	}
	return nil
}

// ValidatePrediction checks that a binary prediction value is 0 or 1.
func ValidatePrediction(p int) error {
	if p != 0 && p != 1 {
		return fmt.Errorf("prediction must be 0 or 1, got %d", p)
	}
	return nil
}

// ValidateProbability checks that a prediction probability lies in [0, 1].
func ValidateProbability(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("probability must be between 0 and 1, got %g", p)
	}
	return nil
}
