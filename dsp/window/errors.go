package window

import (
	"errors"
	"fmt"
)

var (
	errEmptyCoeffs = errors.New("window coefficients must not be empty")
	errZeroSum     = errors.New("window coefficients sum to zero")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateGaussStd(size int, std float64) error {
	if size <= 0 {
		return validateLength(size)
	}
	if std <= 0 {
		return fmt.Errorf("gauss std must be > 0: %f", std)
	}
	return nil
}
