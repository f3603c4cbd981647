package aiub

import (
	_ "embed"
)

//go:embed student_page_test.html
var studentPageTest []byte

//go:embed grade_report_page_test.html
var gradeReportPageTest []byte

//go:embed curriculum_index_page_test.html
var curriculumIndexPageTest []byte

//go:embed curriculum_cs_page_test.html
var curriculumCsPageTest []byte

//go:embed curriculum_math_page_test.html
var curriculumMathPageTest []byte

//go:embed registration_page_test.html
var registrationPageTest []byte
