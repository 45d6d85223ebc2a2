package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortClauseOrdersOnJSONBValue(t *testing.T) {
	asc := sortClause(&Sort{Field: "price"})
	require.Equal(t, ` ORDER BY doc->$2 ASC`, asc)

	desc := sortClause(&Sort{Field: "price", Descending: true})
	require.Equal(t, ` ORDER BY doc->$2 DESC`, desc)

	// ->> would sort numeric fields as text
	require.NotContains(t, asc, "->>")
	require.NotContains(t, desc, "->>")
}
