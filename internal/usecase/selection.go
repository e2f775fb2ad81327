package usecase

import (
	"github.com/MarkCoder7/pktvisor/internal/domain/models"
)

// ApplySelection narrows a dataset to the given row positions. An empty
// selection means the whole dataset in original order. Positions are kept in
// the order given (brushing can be discontinuous) and positions outside the
// dataset's bounds are skipped: a selection that outlived an identifier
// change may index past the rebuilt dataset, and that is recovered here
// rather than reported.
func ApplySelection(ds *models.PairDataset, selection []int) models.DatasetView {
	if len(selection) == 0 {
		return models.DatasetView{Dataset: ds}
	}

	idx := make([]int, 0, len(selection))
	for _, pos := range selection {
		if pos >= 0 && pos < ds.Len() {
			idx = append(idx, pos)
		}
	}
	return models.DatasetView{Dataset: ds, Index: idx}
}
