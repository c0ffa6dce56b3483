package employee

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Employee is the root record; the section structs below hang off it and
// are maintained through their own endpoints.
type Employee struct {
	ID             string     `json:"id"`
	EmployeeNumber string     `json:"employeeNumber"`
	FullName       string     `json:"fullName"`
	Placement      string     `json:"placement"`
	Position       string     `json:"position"`
	Department     string     `json:"department"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	JoinDate       *time.Time `json:"joinDate,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// One-to-one sections.

type IDCard struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Number     string     `json:"number"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	BloodType  string     `json:"bloodType"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`
}

type FamilyCard struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employeeId"`
	Number         string `json:"number"`
	SpouseName     string `json:"spouseName"`
	DependentCount int    `json:"dependentCount"`
}

type Education struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employeeId"`
	Level         string `json:"level"`
	Institution   string `json:"institution"`
	Major         string `json:"major"`
	GraduatedYear int    `json:"graduatedYear"`
}

type BankAccount struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employeeId"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
}

type TaxRecord struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employeeId"`
	NPWP             string `json:"npwp"`
	TaxStatus        string `json:"taxStatus"`
	BPJSHealthNo     string `json:"bpjsHealthNo"`
	BPJSEmploymentNo string `json:"bpjsEmploymentNo"`
}

type PPESize struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	ShirtSize  string `json:"shirtSize"`
	PantsSize  string `json:"pantsSize"`
	ShoeSize   string `json:"shoeSize"`
	HelmetSize string `json:"helmetSize"`
}

// One-to-many sections.

// Contract carries the derived inclusive month count; it is computed on
// read and never stored.
type Contract struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employeeId"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	Placement      string     `json:"placement"`
	ContractType   string     `json:"contractType"`
	DurationMonths *int       `json:"durationMonths,omitempty"`
}

type Certificate struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Name       string     `json:"name"`
	Issuer     string     `json:"issuer"`
	IssuedAt   *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

type MedicalCheck struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	CheckedAt  *time.Time `json:"checkedAt,omitempty"`
	Result     string     `json:"result"`
	Notes      string     `json:"notes"`
}

type StatusHistory struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	Status        string     `json:"status"`
	EffectiveDate *time.Time `json:"effectiveDate,omitempty"`
	Note          string     `json:"note"`
}

// Detail is the fully joined composite the detail screen renders. Absent
// sections stay nil.
type Detail struct {
	Employee
	IDCard        *IDCard         `json:"idCard,omitempty"`
	FamilyCard    *FamilyCard     `json:"familyCard,omitempty"`
	Education     *Education      `json:"education,omitempty"`
	BankAccount   *BankAccount    `json:"bankAccount,omitempty"`
	TaxRecord     *TaxRecord      `json:"taxRecord,omitempty"`
	PPESize       *PPESize        `json:"ppeSize,omitempty"`
	Contracts     []Contract      `json:"contracts"`
	Certificates  []Certificate   `json:"certificates"`
	MedicalChecks []MedicalCheck  `json:"medicalChecks"`
	History       []StatusHistory `json:"history"`
}
