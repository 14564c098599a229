package attendance

import "strconv"

func rowField(i int, field string) string {
	return "rows[" + strconv.Itoa(i) + "]." + field
}
