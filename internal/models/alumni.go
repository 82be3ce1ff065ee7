package models

import "time"

// Alumni is the canonical directory record. RollNumber is the unique,
// immutable external key every update request points at.
type Alumni struct {
	ID                      string    `db:"id" json:"id"`
	RollNumber              string    `db:"roll_number" json:"rollNumber"`
	Name                    string    `db:"name" json:"name"`
	Gender                  *string   `db:"gender" json:"gender,omitempty"`
	YearOfEntry             *int      `db:"year_of_entry" json:"yearOfEntry,omitempty"`
	YearOfGraduation        *int      `db:"year_of_graduation" json:"yearOfGraduation,omitempty"`
	ProgramName             *string   `db:"program_name" json:"programName,omitempty"`
	Specialization          *string   `db:"specialization" json:"specialization,omitempty"`
	Department              *string   `db:"department" json:"department,omitempty"`
	SerialNo                *string   `db:"serial_no" json:"serialNo,omitempty"`
	Email                   *string   `db:"email" json:"email,omitempty"`
	Phone                   *string   `db:"phone" json:"phone,omitempty"`
	LinkedIn                *string   `db:"linked_in" json:"linkedIn,omitempty"`
	Twitter                 *string   `db:"twitter" json:"twitter,omitempty"`
	Instagram               *string   `db:"instagram" json:"instagram,omitempty"`
	Facebook                *string   `db:"facebook" json:"facebook,omitempty"`
	LastPosition            *string   `db:"last_position" json:"lastPosition,omitempty"`
	LastOrganization        *string   `db:"last_organization" json:"lastOrganization,omitempty"`
	NatureOfJob             *string   `db:"nature_of_job" json:"natureOfJob,omitempty"`
	CurrentLocationIndia    *string   `db:"current_location_india" json:"currentLocationIndia,omitempty"`
	CurrentOverseasLocation *string   `db:"current_overseas_location" json:"currentOverseasLocation,omitempty"`
	Country                 *string   `db:"country" json:"country,omitempty"`
	Achievements            *string   `db:"achievements" json:"achievements,omitempty"`
	CollegeClubs            *string   `db:"college_clubs" json:"collegeClubs,omitempty"`
	Hostels                 *string   `db:"hostels" json:"hostels,omitempty"`
	HigherStudies           *string   `db:"higher_studies" json:"higherStudies,omitempty"`
	Startup                 *string   `db:"startup" json:"startup,omitempty"`
	PhotoLink               *string   `db:"photo_link" json:"photoLink,omitempty"`
	CreatedAt               time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt               time.Time `db:"updated_at" json:"updatedAt"`
}

// AlumniSummary is the public search projection. Contact and social fields
// are left out on purpose.
type AlumniSummary struct {
	ID                      string  `db:"id" json:"id"`
	Name                    string  `db:"name" json:"name"`
	RollNumber              string  `db:"roll_number" json:"rollNumber"`
	YearOfEntry             *int    `db:"year_of_entry" json:"yearOfEntry,omitempty"`
	YearOfGraduation        *int    `db:"year_of_graduation" json:"yearOfGraduation,omitempty"`
	ProgramName             *string `db:"program_name" json:"programName,omitempty"`
	Specialization          *string `db:"specialization" json:"specialization,omitempty"`
	Department              *string `db:"department" json:"department,omitempty"`
	SerialNo                *string `db:"serial_no" json:"serialNo,omitempty"`
	LastPosition            *string `db:"last_position" json:"lastPosition,omitempty"`
	LastOrganization        *string `db:"last_organization" json:"lastOrganization,omitempty"`
	NatureOfJob             *string `db:"nature_of_job" json:"natureOfJob,omitempty"`
	CurrentLocationIndia    *string `db:"current_location_india" json:"currentLocationIndia,omitempty"`
	CurrentOverseasLocation *string `db:"current_overseas_location" json:"currentOverseasLocation,omitempty"`
	Country                 *string `db:"country" json:"country,omitempty"`
}

// ProgramPriority is the directory sort order for programmes. Programmes not
// listed rank after all of these.
var ProgramPriority = []string{"PGDMIT", "PGDIT", "IPG", "IMT", "IMG", "BCS", "BIT", "MBA", "MTECH", "PHD", "DSC"}

// UnknownProgramRank is the rank given to absent or unlisted programmes.
var UnknownProgramRank = len(ProgramPriority) + 1
