package coreapi

import (
	"net/http"
	"strconv"

	"github.com/MarcGrol/productcomposite/lib/myerrors"
)

func ValidateProductID(productID int) error {
	if productID < 1 {
		return myerrors.NewInvalidInputErrorf("Invalid productId: %d", productID)
	}
	return nil
}

// ParseProductID converts a path or query value and validates it.
func ParseProductID(raw string) (int, error) {
	productID, err := strconv.Atoi(raw)
	if err != nil {
		return 0, myerrors.NewBadRequestErrorf("Type mismatch.")
	}
	return productID, ValidateProductID(productID)
}

// ProductIDFromQuery reads the mandatory productId query parameter.
func ProductIDFromQuery(r *http.Request) (int, error) {
	values, present := r.URL.Query()["productId"]
	if !present || len(values) == 0 || values[0] == "" {
		return 0, myerrors.NewBadRequestErrorf("Required int parameter 'productId' is not present")
	}
	return ParseProductID(values[0])
}
