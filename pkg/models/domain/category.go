package domain

import "fmt"

type AssetCategory string

const (
	CategoryCombustion    AssetCategory = "combustion"
	CategoryNoncombustion AssetCategory = "noncombustion"
	CategoryRenewable     AssetCategory = "renewable"
	CategoryStorage       AssetCategory = "storage"
)

// Categories returns every asset category in presentation order.
func Categories() []AssetCategory {
	return []AssetCategory{
		CategoryCombustion,
		CategoryNoncombustion,
		CategoryRenewable,
		CategoryStorage,
	}
}

func ParseAssetCategory(s string) (AssetCategory, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown asset category %q", s)
}

func (c AssetCategory) String() string {
	return string(c)
}
