package model

// PatientTableDDL creates the table the dummy rows are seeded into.
const PatientTableDDL = `CREATE TABLE IF NOT EXISTS patient (
	patientid SERIAL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	dateOfBirth DATE NOT NULL
)`

// DummyPatientInserts is the fixed dataset used by the seed action.
var DummyPatientInserts = []string{
	"INSERT INTO patient (name, dateOfBirth) VALUES ('Sara Brown', '1901-01-01')",
	"INSERT INTO patient (name, dateOfBirth) VALUES ('John Smith', '1941-01-01')",
	"INSERT INTO patient (name, dateOfBirth) VALUES ('Jack Ma', '1961-01-30')",
	"INSERT INTO patient (name, dateOfBirth) VALUES ('Elon Musk', '1999-01-01')",
}
