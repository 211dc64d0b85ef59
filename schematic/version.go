package schematic

import (
	"slices"

	"github.com/wippyai/romgen/errors"
)

// DefaultVersion is the version tag used when none is given.
const DefaultVersion = "JE_1_19"

// Java Edition data versions of each release's first build.
var dataVersions = map[string]int32{
	"JE_1_13": 1519,
	"JE_1_14": 1952,
	"JE_1_15": 2225,
	"JE_1_16": 2566,
	"JE_1_17": 2724,
	"JE_1_18": 2860,
	"JE_1_19": 3105,
	"JE_1_20": 3463,
	"JE_1_21": 3953,
}

// DataVersion returns the data version for a version tag. An empty tag
// selects DefaultVersion.
func DataVersion(tag string) (int32, error) {
	if tag == "" {
		tag = DefaultVersion
	}
	v, ok := dataVersions[tag]
	if !ok {
		return 0, errors.Unsupported(errors.PhaseEmit, "version tag "+tag)
	}
	return v, nil
}

// Versions lists the known version tags in release order.
func Versions() []string {
	tags := make([]string, 0, len(dataVersions))
	for tag := range dataVersions {
		tags = append(tags, tag)
	}
	slices.SortFunc(tags, func(a, b string) int {
		return int(dataVersions[a] - dataVersions[b])
	})
	return tags
}
