package repository

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"

	"github.com/noah-isme/alumni-directory-api/internal/models"
)

const alumniSummaryColumns = `id, name, roll_number, year_of_entry, year_of_graduation, program_name, specialization,
       department, serial_no, last_position, last_organization, nature_of_job, current_location_india,
       current_overseas_location, country`

const alumniColumns = `id, roll_number, name, gender, year_of_entry, year_of_graduation, program_name, specialization,
       department, serial_no, email, phone, linked_in, twitter, instagram, facebook, last_position,
       last_organization, nature_of_job, current_location_india, current_overseas_location, country,
       achievements, college_clubs, hostels, higher_studies, startup, photo_link, created_at, updated_at`

// maxSerialRank places rows without a numeric serial number after every other row.
const maxSerialRank = "9223372036854775807"

// alumniPredicate accumulates AND-ed clauses with positional arguments.
type alumniPredicate struct {
	clauses []string
	args    []interface{}
}

func (p *alumniPredicate) bind(value interface{}) string {
	p.args = append(p.args, value)
	return fmt.Sprintf("$%d", len(p.args))
}

func (p *alumniPredicate) contains(column, value string) {
	if value == "" {
		return
	}
	p.clauses = append(p.clauses, fmt.Sprintf("%s ~* %s", column, p.bind(regexp.QuoteMeta(value))))
}

func (p *alumniPredicate) exact(column, value string) {
	if value == "" {
		return
	}
	pattern := `^\s*` + regexp.QuoteMeta(value) + `\s*$`
	p.clauses = append(p.clauses, fmt.Sprintf("%s ~* %s", column, p.bind(pattern)))
}

func (p *alumniPredicate) wordPrefix(value string, columns ...string) {
	if value == "" {
		return
	}
	placeholder := p.bind(`\y` + regexp.QuoteMeta(value))
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = fmt.Sprintf("%s ~* %s", column, placeholder)
	}
	p.clauses = append(p.clauses, "("+strings.Join(parts, " OR ")+")")
}

func (p *alumniPredicate) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// buildAlumniPredicate translates the filter into a WHERE clause. User text is
// regex-escaped and always bound, never spliced into the statement.
func buildAlumniPredicate(filter models.AlumniSearchFilter) *alumniPredicate {
	p := &alumniPredicate{args: make([]interface{}, 0, 12)}

	p.contains("name", filter.Name)
	p.contains("last_organization", filter.LastOrganization)
	p.contains("last_position", filter.LastPosition)
	p.contains("college_clubs", filter.CollegeClubs)

	p.wordPrefix(filter.City, "current_location_india", "current_overseas_location")

	p.exact("roll_number", filter.RollNumber)
	p.exact("nature_of_job", filter.NatureOfJob)
	p.exact("country", filter.Country)
	p.exact("program_name", filter.ProgramName)
	p.exact("specialization", filter.Specialization)

	if filter.YearOfEntry != nil {
		p.clauses = append(p.clauses, fmt.Sprintf("year_of_entry = %s", p.bind(*filter.YearOfEntry)))
	}
	return p
}

// alumniOrderBy ranks by programme priority, then numeric serial, then raw
// serial, with roll_number as the unique tie-break. The priority list is bound
// as the next positional argument.
func alumniOrderBy(p *alumniPredicate) string {
	programs := p.bind(pq.Array(models.ProgramPriority))
	return fmt.Sprintf(` ORDER BY COALESCE(array_position(%s::text[], upper(btrim(program_name))), %d),
       COALESCE(substring(serial_no from '^\s*([+-]?[0-9]{1,18})')::bigint, %s),
       COALESCE(serial_no, ''),
       roll_number`, programs, models.UnknownProgramRank, maxSerialRank)
}
