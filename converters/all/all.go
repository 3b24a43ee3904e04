package all

import (
	// Import all the converters so they register themselves
	_ "github.com/darianmavgo/mksql/converters/csv"
	_ "github.com/darianmavgo/mksql/converters/excel"
)
