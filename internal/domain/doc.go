// Package domain models the two public text reports this service aggregates:
// the USACE reservoir-operations report for Norfork Lake and the SWPA
// projected loading schedule.
//
// # Reservoir report (USACE)
//
// The Little Rock district publishes a monospace tabular report wrapped in
// basic HTML. The header carries pool constants in a fixed numeric format
// (three integer digits, a decimal point, two fraction digits):
//
//	Top Flood Pool ............. 580.00
//	Current Power Pool ......... 553.75
//
// Data rows start with a DDMMMYYYY date token and an HHMM time token:
//
//	06DEC2025 1500  553.43  362.10  0.00  12.5  1800  0.0  1800
//
// Column layout after whitespace splitting (not contractually stable):
//
//	0 date | 1 time | 2 elevation ft | 3 tailwater ft | 4 precip |
//	5 generation MWh | 6 generation CFS | 7 spill | 8 total release CFS
//
// Only the elevation is required; trailing columns are frequently missing or
// non-numeric and are modeled as absent rather than zero.
//
// # Time conventions
//
// Times are local wall-clock with no printed offset. "2400" follows the
// end-of-day convention and means 00:00 of the next calendar day. The source
// observes daylight saving; since rows carry no offset, the UTC offset is
// inferred from the calendar month alone: April through October use CDT
// (UTC-5), November through March use CST (UTC-6). Actual DST transitions
// fall on Sundays inside March and November, so readings within those weeks
// can be off by one hour. Known approximation, kept deliberately.
//
// # Schedule report (SWPA)
//
// One plain-text page per weekday, located by the literal section marker
// "PROJECTED LOADING SCHEDULE". A header line a few lines below names the
// generation-unit columns (BSD, NFD, GFD, ...). The table is aligned by
// character position, not delimiters, so the column of interest (NFD, the
// Norfork dam unit) is extracted by the character offset of "NFD" in the
// header. Hours use the "hour ending" convention: hour N covers the 60
// minutes ending at N:00, hour 24 ends at midnight.
package domain
