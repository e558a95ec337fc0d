package mapper

import (
	"github.com/google/uuid"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/model"
)

type BookingMapper struct{}

func NewBookingMapper() *BookingMapper {
	return &BookingMapper{}
}

func (m *BookingMapper) ToEntity(b *model.Booking) *entity.Booking {
	if b == nil {
		return nil
	}
	participants := make([]entity.Participant, 0, len(b.Participants))
	for _, row := range b.Participants {
		participants = append(participants, entity.Participant{
			Id:        row.Id,
			UserId:    row.UserId,
			BookingId: row.StampedBookingId,
			Name:      row.Name,
			Phone:     row.Phone,
			Gender:    entity.UserGender(row.Gender),
			Age:       row.Age,
		})
	}
	return &entity.Booking{
		Id:            b.Id,
		UserId:        b.UserId,
		TravelId:      b.TravelId,
		Participants:  participants,
		BookingStatus: entity.BookingStatus(b.BookingStatus),
		Amount:        b.Amount,
		TotalPeople:   b.TotalPeople,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (m *BookingMapper) ToModel(b *entity.Booking) *model.Booking {
	if b == nil {
		return nil
	}
	return &model.Booking{
		Id:            b.Id,
		UserId:        b.UserId,
		TravelId:      b.TravelId,
		BookingStatus: string(b.BookingStatus),
		Amount:        b.Amount,
		TotalPeople:   b.TotalPeople,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (m *BookingMapper) ParticipantToModel(bookingId uuid.UUID, p *entity.Participant) *model.BookingParticipant {
	if p == nil {
		return nil
	}
	return &model.BookingParticipant{
		Id:               p.Id,
		BookingId:        bookingId,
		UserId:           p.UserId,
		Name:             p.Name,
		Phone:            p.Phone,
		Gender:           string(p.Gender),
		Age:              p.Age,
		StampedBookingId: p.BookingId,
	}
}
