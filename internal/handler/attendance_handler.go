package handler

import (
	"go-campus-events/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AttendanceHandler struct {
	attendanceService service.AttendanceService
}

func NewAttendanceHandler(attendanceService service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// GET /api/attendance-sessions
func (h *AttendanceHandler) GetSessions(c *fiber.Ctx) error {
	sessions, err := h.attendanceService.ListSessions(c.UserContext())
	if err != nil {
		return fail(c, err, "Attendance session")
	}
	return ok(c, sessions)
}

// CreateSession opens a roll call; sessionDate defaults to now
// POST /api/attendance-sessions
func (h *AttendanceHandler) CreateSession(c *fiber.Ctx) error {
	var req service.SessionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.attendanceService.CreateSession(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "Attendance session")
	}
	return created(c, session)
}

// GET /api/attendance-sessions/:id
func (h *AttendanceHandler) GetSession(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	session, err := h.attendanceService.GetSession(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Attendance session")
	}
	return ok(c, session)
}

// PATCH /api/attendance-sessions/:id
func (h *AttendanceHandler) UpdateSession(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateSessionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	session, err := h.attendanceService.UpdateSession(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "Attendance session")
	}
	return ok(c, session)
}

// DELETE /api/attendance-sessions/:id
func (h *AttendanceHandler) DeleteSession(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.attendanceService.DeleteSession(c.UserContext(), id); err != nil {
		return fail(c, err, "Attendance session")
	}
	return message(c, "Attendance session deleted successfully.")
}

// GET /api/attendance-sessions/by-event/:eventId
func (h *AttendanceHandler) GetSessionsByEvent(c *fiber.Ctx) error {
	id, err := uuidParam(c, "eventId")
	if err != nil {
		return err
	}
	sessions, err := h.attendanceService.SessionsByEvent(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Attendance session")
	}
	return ok(c, sessions)
}

// MarkBulk records attendance for many users at once. Users already marked
// in the session are skipped; only new records are returned.
// POST /api/attendance-sessions/:id/mark-attendance
func (h *AttendanceHandler) MarkBulk(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req service.MarkBulkRequest
	if err := c.BodyParser(&req); err != nil || req.AttendanceData == nil {
		return failure(c, fiber.StatusBadRequest, "attendance_data must be an array.")
	}

	records, err := h.attendanceService.MarkBulk(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "Attendance session")
	}
	return created(c, records)
}

// GET /api/attendance
func (h *AttendanceHandler) GetAttendance(c *fiber.Ctx) error {
	records, err := h.attendanceService.List(c.UserContext())
	if err != nil {
		return fail(c, err, "Attendance")
	}
	return ok(c, records)
}

// POST /api/attendance
func (h *AttendanceHandler) CreateAttendance(c *fiber.Ctx) error {
	var req service.CreateAttendanceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	record, err := h.attendanceService.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "Attendance")
	}
	return created(c, record)
}

// GET /api/attendance/:id
func (h *AttendanceHandler) GetAttendanceRecord(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	record, err := h.attendanceService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Attendance")
	}
	return ok(c, record)
}

// UpdateAttendance also serves PATCH /api/attendance/mark/:id, which is
// mounted behind the faculty check.
// PATCH /api/attendance/:id
func (h *AttendanceHandler) UpdateAttendance(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateAttendanceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	record, err := h.attendanceService.Update(c.UserContext(), id, &req)
	if err != nil {
		return fail(c, err, "Attendance")
	}
	return ok(c, record)
}

// DELETE /api/attendance/:id
func (h *AttendanceHandler) DeleteAttendance(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.attendanceService.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "Attendance")
	}
	return message(c, "Attendance deleted successfully.")
}

// GET /api/attendance/by-session/:sessionId
func (h *AttendanceHandler) GetBySession(c *fiber.Ctx) error {
	id, err := uuidParam(c, "sessionId")
	if err != nil {
		return err
	}
	records, err := h.attendanceService.BySession(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "Attendance")
	}
	return ok(c, records)
}
