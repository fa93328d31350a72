package places

// Countries lists sovereign states by short English name.
var Countries = []string{
	"Afghanistan", "Albania", "Algeria", "Andorra", "Angola", "Antigua and Barbuda",
	"Argentina", "Armenia", "Australia", "Austria", "Azerbaijan", "Bahamas",
	"Bahrain", "Bangladesh", "Barbados", "Belarus", "Belgium", "Belize", "Benin",
	"Bhutan", "Bolivia", "Bosnia and Herzegovina", "Botswana", "Brazil", "Brunei",
	"Bulgaria", "Burkina Faso", "Burundi", "Cabo Verde", "Cambodia", "Cameroon",
	"Canada", "Central African Republic", "Chad", "Chile", "China", "Colombia",
	"Comoros", "Congo", "Costa Rica", "Côte d'Ivoire", "Croatia", "Cuba", "Cyprus",
	"Czechia", "Denmark", "Djibouti", "Dominica", "Dominican Republic", "Ecuador",
	"Egypt", "El Salvador", "Equatorial Guinea", "Eritrea", "Estonia", "Eswatini",
	"Ethiopia", "Fiji", "Finland", "France", "Gabon", "Gambia", "Georgia", "Germany",
	"Ghana", "Greece", "Grenada", "Guatemala", "Guinea", "Guinea-Bissau", "Guyana",
	"Haiti", "Honduras", "Hungary", "Iceland", "India", "Indonesia", "Iran", "Iraq",
	"Ireland", "Israel", "Italy", "Jamaica", "Japan", "Jordan", "Kazakhstan", "Kenya",
	"Kiribati", "Kosovo", "Kuwait", "Kyrgyzstan", "Laos", "Latvia", "Lebanon",
	"Lesotho", "Liberia", "Libya", "Liechtenstein", "Lithuania", "Luxembourg",
	"Madagascar", "Malawi", "Malaysia", "Maldives", "Mali", "Malta",
	"Marshall Islands", "Mauritania", "Mauritius", "Mexico", "Micronesia", "Moldova",
	"Monaco", "Mongolia", "Montenegro", "Morocco", "Mozambique", "Myanmar", "Namibia",
	"Nauru", "Nepal", "Netherlands", "New Zealand", "Nicaragua", "Niger", "Nigeria",
	"North Korea", "North Macedonia", "Norway", "Oman", "Pakistan", "Palau",
	"Palestine", "Panama", "Papua New Guinea", "Paraguay", "Peru", "Philippines",
	"Poland", "Portugal", "Qatar", "Romania", "Russia", "Rwanda",
	"Saint Kitts and Nevis", "Saint Lucia", "Saint Vincent and the Grenadines",
	"Samoa", "San Marino", "São Tomé and Príncipe", "Saudi Arabia", "Senegal",
	"Serbia", "Seychelles", "Sierra Leone", "Singapore", "Slovakia", "Slovenia",
	"Solomon Islands", "Somalia", "South Africa", "South Korea", "South Sudan",
	"Spain", "Sri Lanka", "Sudan", "Suriname", "Sweden", "Switzerland", "Syria",
	"Taiwan", "Tajikistan", "Tanzania", "Thailand", "Timor-Leste", "Togo", "Tonga",
	"Trinidad and Tobago", "Tunisia", "Turkey", "Turkmenistan", "Tuvalu", "Uganda",
	"Ukraine", "United Arab Emirates", "United Kingdom", "United States", "Uruguay",
	"Uzbekistan", "Vanuatu", "Vatican City", "Venezuela", "Vietnam", "Yemen",
	"Zambia", "Zimbabwe",
}

// USStates lists the fifty U.S. states.
var USStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho", "Illinois",
	"Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana", "Maine", "Maryland",
	"Massachusetts", "Michigan", "Minnesota", "Mississippi", "Missouri", "Montana",
	"Nebraska", "Nevada", "New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon", "Pennsylvania",
	"Rhode Island", "South Carolina", "South Dakota", "Tennessee", "Texas", "Utah",
	"Vermont", "Virginia", "Washington", "West Virginia", "Wisconsin", "Wyoming",
}

// Capitals lists national capitals followed by U.S. state capitals.
var Capitals = []string{
	"Abu Dhabi", "Abuja", "Accra", "Addis Ababa", "Algiers", "Amman", "Amsterdam",
	"Ankara", "Antananarivo", "Apia", "Ashgabat", "Asmara", "Astana", "Asuncion",
	"Athens", "Baghdad", "Baku", "Bamako", "Bangkok", "Bangui", "Banjul",
	"Beijing", "Beirut", "Belgrade", "Berlin", "Bern", "Bishkek", "Bogota",
	"Brasilia", "Bratislava", "Brussels", "Bucharest", "Budapest", "Buenos Aires",
	"Cairo", "Canberra", "Caracas", "Castries", "Chisinau", "Colombo", "Conakry",
	"Copenhagen", "Dakar", "Damascus", "Dhaka", "Dili", "Djibouti", "Dodoma",
	"Doha", "Dublin", "Dushanbe", "Freetown", "Funafuti", "Gaborone", "Georgetown",
	"Guatemala City", "Hanoi", "Harare", "Havana", "Helsinki", "Honiara",
	"Islamabad", "Jakarta", "Juba", "Kabul", "Kampala", "Kathmandu", "Khartoum",
	"Kigali", "Kingston", "Kinshasa", "Kyiv", "Libreville", "Lilongwe", "Lima",
	"Lisbon", "Ljubljana", "Lome", "London", "Luanda", "Lusaka", "Luxembourg",
	"Madrid", "Majuro", "Malabo", "Male", "Managua", "Manama", "Manila", "Maputo",
	"Maseru", "Mbabane", "Mexico City", "Minsk", "Mogadishu", "Monaco", "Monrovia",
	"Montevideo", "Moroni", "Moscow", "Muscat", "Nairobi", "Nassau", "Naypyidaw",
	"New Delhi", "Niamey", "Nicosia", "Nouakchott", "Nukualofa", "Oslo", "Ottawa",
	"Ouagadougou", "Palikir", "Panama City", "Paramaribo", "Paris", "Phnom Penh",
	"Podgorica", "Port Louis", "Port Moresby", "Port Vila", "Port-au-Prince",
	"Port of Spain", "Porto-Novo", "Prague", "Praia", "Pretoria", "Pristina",
	"Pyongyang", "Quito", "Rabat", "Reykjavik", "Riga", "Riyadh", "Rome", "Roseau",
	"San Jose", "San Marino", "San Salvador", "Sanaa", "Santiago", "Santo Domingo",
	"Sao Tome", "Sarajevo", "Seoul", "Singapore", "Skopje", "Sofia", "Stockholm",
	"Suva", "Taipei", "Tallinn", "Tarawa", "Tashkent", "Tbilisi", "Tegucigalpa",
	"Tehran", "Thimphu", "Tirana", "Tokyo", "Tripoli", "Tunis", "Ulaanbaatar",
	"Vaduz", "Valletta", "Vatican City", "Victoria", "Vienna", "Vientiane",
	"Vilnius", "Warsaw", "Washington", "Wellington", "Windhoek", "Yamoussoukro",
	"Yaounde", "Yerevan", "Zagreb",

	"Albany", "Annapolis", "Atlanta", "Augusta", "Austin", "Baton Rouge",
	"Bismarck", "Boise", "Boston", "Carson City", "Charleston", "Cheyenne",
	"Columbia", "Columbus", "Concord", "Denver", "Des Moines", "Dover",
	"Frankfort", "Harrisburg", "Hartford", "Helena", "Honolulu", "Indianapolis",
	"Jackson", "Jefferson City", "Juneau", "Lansing", "Lincoln", "Little Rock",
	"Madison", "Montgomery", "Montpelier", "Nashville", "Oklahoma City", "Olympia",
	"Phoenix", "Pierre", "Providence", "Raleigh", "Richmond", "Sacramento",
	"Saint Paul", "Salem", "Salt Lake City", "Santa Fe", "Springfield",
	"Tallahassee", "Topeka", "Trenton",
}

// All returns every name in the tables, duplicates included.
func All() []string {
	out := make([]string, 0, len(Countries)+len(USStates)+len(Capitals))
	out = append(out, Countries...)
	out = append(out, USStates...)
	out = append(out, Capitals...)
	return out
}
