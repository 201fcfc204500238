package calendar

// krHolidays is the built-in KRX closure window covering the previous,
// current, and next two calendar years, so the forward walk never needs to
// fetch holiday data mid-computation. Dates follow the exchange's published
// closing days, including substitute holidays and the year-end closure.
var krHolidays = []string{
	// 2025
	"2025-01-01", // New Year's Day
	"2025-01-27", // Seollal holiday period
	"2025-01-28",
	"2025-01-29",
	"2025-01-30",
	"2025-03-03", // Independence Movement Day (substitute)
	"2025-05-05", // Children's Day / Buddha's Birthday
	"2025-05-06", // substitute holiday
	"2025-06-03", // presidential election day
	"2025-06-06", // Memorial Day
	"2025-08-15", // Liberation Day
	"2025-10-03", // National Foundation Day
	"2025-10-06", // Chuseok holiday period
	"2025-10-07",
	"2025-10-08",
	"2025-10-09", // Hangul Day
	"2025-12-25", // Christmas
	"2025-12-31", // year-end closure

	// 2026
	"2026-01-01",
	"2026-02-16", // Seollal holiday period
	"2026-02-17",
	"2026-02-18",
	"2026-03-02", // Independence Movement Day (substitute)
	"2026-05-05",
	"2026-05-25", // Buddha's Birthday (substitute)
	"2026-08-17", // Liberation Day (substitute)
	"2026-09-24", // Chuseok holiday period
	"2026-09-25",
	"2026-10-05", // National Foundation Day (substitute)
	"2026-10-09",
	"2026-12-25",
	"2026-12-31",

	// 2027
	"2027-01-01",
	"2027-02-08", // Seollal holiday period
	"2027-02-09",
	"2027-03-01",
	"2027-05-05",
	"2027-05-13", // Buddha's Birthday
	"2027-08-16", // Liberation Day (substitute)
	"2027-09-14", // Chuseok holiday period
	"2027-09-15",
	"2027-09-16",
	"2027-10-04", // National Foundation Day (substitute)
	"2027-10-11", // Hangul Day (substitute)
	"2027-12-27", // Christmas (substitute)
	"2027-12-31",
}
