// Package facetplot draws faceted mean/standard-deviation line charts
// from measurement records.
//
// Data Representation: Data Frames
//
// Records are flat key-value objects, typically read from a JSON array:
//
//	[ {"type": "A", "typeUser": "user", "size": 64, "value": 3.2}, ... ]
//
// They are stored column-wise in a DataFrame. Internally a DataFrame
// uses float64 for all data: numbers are stored directly, strings are
// interned in a StringPool and stored as their index.
//
//
// Faceting
//
// The fields named in Faceting.Rows and Faceting.Columns split the
// records into a grid of panels. Rows and columns appear in the order
// their values first occur in the data, not sorted. Inside a panel
// the records are split into lines by the fields mapped to the "group"
// aesthetic.
//
//
// Statistics and Geoms
//
// The default statistic StatMeanSD groups the points of a line by x and
// reduces each group to the mean and the population standard deviation
// of its y-values. The default geoms draw the mean as a line on top of
// a translucent ribbon spanning mean-SD to mean+SD.
//
//
// Scales
//
// All panels of a column share their x scale and all panels of a row
// share their y scale unless Faceting.FreeScale says otherwise. Scales
// may be linear or logarithmic; the choice changes the axis only, not
// the plotted values.
//
//
// Output
//
// Each panel becomes a gonum.org/v1/plot Plot; the grid is aligned with
// plot.Align and written in any format draw.NewFormattedCanvas knows.
package facetplot
