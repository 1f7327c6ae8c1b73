package query

import (
	"fmt"

	"github.com/de-tools/result-atlas/pkg/models/domain"
)

type Stream string

const (
	StreamModel          Stream = "model"
	StreamOperationModes Stream = "operation-modes"
	StreamAsset          Stream = "asset"
)

// Target names one series of a ResultSet.
type Target struct {
	Stream   Stream
	Category domain.AssetCategory // StreamAsset only
	Asset    string               // StreamAsset only
}

func ParseStream(s string) (Stream, error) {
	switch Stream(s) {
	case StreamModel, StreamOperationModes:
		return Stream(s), nil
	default:
		return "", fmt.Errorf("unknown stream %q", s)
	}
}

func AssetTarget(category domain.AssetCategory, name string) Target {
	return Target{Stream: StreamAsset, Category: category, Asset: name}
}

func (t Target) String() string {
	if t.Stream == StreamAsset {
		return fmt.Sprintf("%s/%s", t.Category, t.Asset)
	}
	return string(t.Stream)
}

// Resolve returns the series named by target.
func Resolve(rs *domain.ResultSet, target Target) (domain.Series, error) {
	switch target.Stream {
	case StreamModel:
		return rs.Model.Dispatch, nil
	case StreamOperationModes:
		return rs.Model.OperationModes, nil
	case StreamAsset:
		asset, err := rs.Asset(target.Category, target.Asset)
		if err != nil {
			return domain.Series{}, err
		}
		return asset.Series, nil
	default:
		return domain.Series{}, fmt.Errorf("unknown stream %q", target.Stream)
	}
}
