// Package roles maps classification codes to their display labels.
package roles

// Classification codes assignable to an account.
const (
	Admin    = 1000
	Officer  = 2000
	General  = 3000
	External = 4000
	Curator  = 5000
	Other    = 6000
)

// UnknownLabel is returned for any code outside the known set.
const UnknownLabel = "ไม่ทราบสิทธิ์"

var names = map[int]string{
	Admin:    "ผู้ดูแลระบบ",
	Officer:  "เจ้าหน้าที่วิจัย",
	General:  "ผู้ใช้งานทั่วไป",
	External: "ผู้ร่วมวิจัยภายนอก",
	Curator:  "ผู้บ่มข้อมูล",
	Other:    "อื่นๆ",
}

// Name returns the display label for a code, falling back to UnknownLabel.
func Name(code int) string {
	if name, ok := names[code]; ok {
		return name
	}
	return UnknownLabel
}

// LogName returns the label used in role-change history rows, where an
// unresolvable code renders as a dash.
func LogName(code int) string {
	if name, ok := names[code]; ok {
		return name
	}
	return "-"
}

// Allowed reports whether a code may be assigned to an account. Unknown codes
// are tolerated on read but never written.
func Allowed(code int) bool {
	_, ok := names[code]
	return ok
}
