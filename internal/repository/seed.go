package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/asbhive/directory/api/internal/entity"
)

type seedCompany struct {
	id       string
	name     string
	email    string
	website  string
	sector   string
	desc     string
	contact  string
	news     string
	programs string
	created  string
}

var seedCompanies = []seedCompany{
	{
		id:       "5f0c6a43-8a1e-4c36-9d6e-0b7d2f8e0008",
		name:     "Youth Skills Academy",
		email:    "academy@youthskills.my",
		website:  "https://youthskills.my",
		sector:   "Youth Development",
		desc:     "Providing skills training and entrepreneurship development programs for unemployed youth in Malaysia, focusing on digital skills and green jobs.",
		contact:  "Phone: +60 5-890-1234, Address: Perak, Malaysia",
		news:     "Graduated 500+ youth from skills programs in 2024",
		programs: "Youth Employment Program, Green Skills Initiative",
		created:  "2024-08-30T15:00:00Z",
	},
	{
		id:       "5f0c6a43-8a1e-4c36-9d6e-0b7d2f8e0007",
		name:     "Elderly Care Connect",
		email:    "care@elderlyconnect.my",
		website:  "https://elderlyconnect.my",
		sector:   "Healthcare & Elderly Care",
		desc:     "Technology-enabled elderly care services connecting seniors with healthcare providers and family members for better quality of life.",
		contact:  "Phone: +60 6-789-0123, Address: Malacca, Malaysia",
		news:     "Launched AI-powered health monitoring system",
		programs: "Aging Society Preparedness Program, Health Innovation Challenge",
		created:  "2024-07-22T13:45:00Z",
	},
	{
		id:       "5f0c6a43-8a1e-4c36-9d6e-0b7d2f8e0006",
		name:     "Clean Water Initiative",
		email:    "info@cleanwater.my",
		website:  "https://cleanwater.my",
		sector:   "Water & Sanitation",
		desc:     "Installing water purification systems and promoting water conservation practices in underserved communities across Malaysia.",
		contact:  "Phone: +60 8-567-8901, Address: Sabah, Malaysia",
		news:     "Provided clean water access to 20 remote villages",
		programs: "Water for All Program, Sustainable Development Goals Initiative",
		created:  "2024-06-18T08:15:00Z",
	},
	{
		id:       "5f0c6a43-8a1e-4c36-9d6e-0b7d2f8e0005",
		name:     "Urban Microfinance Solutions",
		email:    "support@urbanmfi.my",
		website:  "https://urbanmfi.my",
		sector:   "Financial Inclusion",
		desc:     "Providing microfinance and financial literacy services to low-income urban communities and micro-enterprises in Malaysian cities.",
		contact:  "Phone: +60 3-456-7890, Address: Kuala Lumpur, Malaysia",
		news:     "Disbursed RM5 million in microloans in 2024",
		programs: "Financial Inclusion Initiative, Impact Investment Network",
		created:  "2024-05-12T11:30:00Z",
	},
	{
		id:       "5f0c6a43-8a1e-4c36-9d6e-0b7d2f8e0004",
		name:     "AgriSmart Collective",
		email:    "team@agrismart.my",
		website:  "https://agrismart.my",
		sector:   "Agriculture & Food Security",
		desc:     "Empowering smallholder farmers with smart agriculture technologies and direct market access to improve livelihoods and food security.",
		contact:  "Phone: +60 9-234-5678, Address: Kelantan, Malaysia",
		news:     "Supported 1000+ farmers in adopting precision agriculture",
		programs: "Agriculture Transformation Programme, ASEAN Social Enterprise Network",
		created:  "2024-04-05T16:20:00Z",
	},
	{
		id:       "5f0c6a43-8a1e-4c36-9d6e-0b7d2f8e0003",
		name:     "Inclusive Education Hub",
		email:    "hello@inclusiveedu.my",
		website:  "https://inclusiveedu.my",
		sector:   "Education & Training",
		desc:     "Providing inclusive education solutions and vocational training for persons with disabilities and underprivileged communities in Malaysia.",
		contact:  "Phone: +60 7-890-1234, Address: Johor Bahru, Malaysia",
		news:     "Launched new vocational training center in Johor",
		programs: "Skills Development Fund, Inclusive Malaysia Program",
		created:  "2024-03-10T09:45:00Z",
	},
	{
		id:       "5f0c6a43-8a1e-4c36-9d6e-0b7d2f8e0002",
		name:     "Rural Connect Sdn Bhd",
		email:    "info@ruralconnect.my",
		website:  "https://ruralconnect.my",
		sector:   "Digital Inclusion",
		desc:     "Bridging the digital divide by providing affordable internet connectivity and digital literacy programs to rural communities across Malaysia.",
		contact:  "Phone: +60 4-567-8901, Address: Penang, Malaysia",
		news:     "Expanded to 50 rural villages in 2024",
		programs: "Digital Malaysia Initiative, Social Impact Bond Program",
		created:  "2024-02-20T14:15:00Z",
	},
	{
		id:       "5f0c6a43-8a1e-4c36-9d6e-0b7d2f8e0001",
		name:     "EcoTech Solutions Malaysia",
		email:    "contact@ecotech.my",
		website:  "https://ecotech.my",
		sector:   "Environmental Technology",
		desc:     "Leading provider of sustainable technology solutions for waste management and renewable energy in Malaysia. We focus on creating innovative solutions that help businesses reduce their environmental footprint.",
		contact:  "Phone: +60 3-2345-6789, Address: Kuala Lumpur, Malaysia",
		news:     "Recently won the Malaysia Green Technology Award 2024",
		programs: "Malaysian Social Enterprise Blueprint Program, UNSDG Impact Accelerator",
		created:  "2024-01-15T10:30:00Z",
	},
}

// SampleCompanies returns a fresh copy of the built-in directory used when the store is unreachable.
// Records are ordered newest first, matching FetchAll.
func SampleCompanies() []entity.Company {
	out := make([]entity.Company, 0, len(seedCompanies))
	for _, s := range seedCompanies {
		created, err := time.Parse(time.RFC3339, s.created)
		if err != nil {
			panic(err)
		}
		email, website, contact, programs := s.email, s.website, s.contact, s.programs
		out = append(out, entity.Company{
			ID:                   uuid.MustParse(s.id),
			Name:                 s.name,
			Email:                &email,
			Sector:               s.sector,
			Description:          s.desc,
			WebsiteURL:           &website,
			ContactInfo:          &contact,
			Status:               "Verified",
			NewsSummary:          s.news,
			ProgramParticipation: &programs,
			CreatedAt:            created,
		})
	}
	return out
}
