package seeders

type userSeed struct {
	Email string
	Name  string
	Role  string
	Team  string
}

type teamSeed struct {
	Name        string
	Description string
}

type equipmentSeed struct {
	Name     string
	Serial   string
	Category string
	Location string
	Team     string
}

// demoPassword is shared by every seeded non-admin account.
const demoPassword = "password123"

var demoTeams = []teamSeed{
	{Name: "Mechanics", Description: "Presses, conveyors and other moving machinery"},
	{Name: "Electricians", Description: "Power distribution and control cabinets"},
	{Name: "IT Support", Description: "Workstations, printers and network gear"},
}

var demoUsers = []userSeed{
	{Email: "manager@gearguard.local", Name: "Dana Manager", Role: "manager"},
	{Email: "mech.lead@gearguard.local", Name: "Alex Turner", Role: "technician", Team: "Mechanics"},
	{Email: "mech.tech@gearguard.local", Name: "Sam Rivera", Role: "technician", Team: "Mechanics"},
	{Email: "elec.lead@gearguard.local", Name: "Jordan Lee", Role: "technician", Team: "Electricians"},
	{Email: "it.lead@gearguard.local", Name: "Robin Park", Role: "technician", Team: "IT Support"},
	{Email: "operator@gearguard.local", Name: "Casey Operator", Role: "user"},
}

var demoCategories = []string{"Machinery", "Electrical", "Computers", "Vehicles"}

var demoWorkCenters = []string{"Assembly Line 1", "Assembly Line 2", "Warehouse"}

var demoEquipment = []equipmentSeed{
	{Name: "Hydraulic Press HP-200", Serial: "HP200-0001", Category: "Machinery", Location: "Hall A", Team: "Mechanics"},
	{Name: "Conveyor Belt CB-12", Serial: "CB12-0042", Category: "Machinery", Location: "Hall A", Team: "Mechanics"},
	{Name: "Main Switchboard", Serial: "MSB-7781", Category: "Electrical", Location: "Substation", Team: "Electricians"},
	{Name: "Forklift FL-3", Serial: "FL3-2210", Category: "Vehicles", Location: "Warehouse", Team: "Mechanics"},
	{Name: "Office Printer", Serial: "PRN-5520", Category: "Computers", Location: "Office 2", Team: "IT Support"},
}
