package services

import (
	"time"

	"deptevents/internal/domain"
)

// seedEvents returns the sample events written on first start, stamped with createdAt.
func seedEvents(createdAt time.Time) map[string][]domain.Event {
	ev := func(id int, title, description, date, timeOfDay, venue string) domain.Event {
		return *domain.NewEvent(id, title, description, date, timeOfDay, venue, createdAt)
	}
	return map[string][]domain.Event{
		domain.DepartmentCS: {
			ev(1, "TechFest 2025",
				"Annual coding competition for Computer Science students. Showcase your programming skills and compete with peers from other colleges.",
				"2025-11-15", "10:00 AM", "Auditorium A"),
			ev(2, "Web Development Workshop",
				"Learn modern web development frameworks and best practices. Hands-on session with industry experts covering React, Vue, and Angular.",
				"2025-12-01", "02:00 PM", "Computer Lab 1"),
			ev(3, "AI and Machine Learning Summit",
				"Explore the future of artificial intelligence and machine learning. Keynote speakers from leading tech companies sharing insights and innovations.",
				"2025-10-20", "09:00 AM", "Auditorium B"),
		},
		domain.DepartmentEE: {
			ev(101, "Power Systems Seminar",
				"Understanding modern power distribution systems and renewable energy integration. Expert presentations on smart grids and energy management.",
				"2025-11-10", "11:00 AM", "Lecture Hall 2"),
			ev(102, "Circuit Design Competition",
				"Design and build innovative electronic circuits. Compete with other departments and win exciting prizes. All materials provided.",
				"2025-11-25", "03:00 PM", "Electronics Lab"),
		},
		domain.DepartmentME: {
			ev(201, "Mechanical Design Workshop",
				"Learn CAD design principles using industry-standard software. Create 3D models and understand design optimization techniques.",
				"2025-11-20", "10:00 AM", "Design Lab"),
		},
		domain.DepartmentCivil: {
			ev(301, "Structural Engineering Expo",
				"Discover innovations in structural design and construction technology. Interactive displays of modern building techniques and materials.",
				"2025-12-05", "01:00 PM", "Conference Room"),
		},
		domain.DepartmentECE: {
			ev(401, "Embedded Systems Bootcamp",
				"Master embedded systems programming and IoT applications. Learn to develop smart devices and connected solutions.",
				"2025-11-18", "02:00 PM", "Lab 3"),
		},
	}
}
