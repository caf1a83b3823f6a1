package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/core/services"
	"github.com/SscSPs/pdv_backoffice/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentMethodServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPaymentMethodRepository
	service  portssvc.PaymentMethodSvcFacade
}

func (suite *PaymentMethodServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPaymentMethodRepository)
	suite.service = services.NewPaymentMethodService(suite.mockRepo)
}

func (suite *PaymentMethodServiceTestSuite) TestCreatePaymentMethod_Success() {
	ctx := context.Background()
	req := dto.CreatePaymentMethodRequest{Name: "Débito Stone", Tender: domain.TenderDebit, FeePercentage: dec("1.99"), SettlementDays: 1}

	suite.mockRepo.On("SavePaymentMethod", ctx, mock.MatchedBy(func(m domain.PaymentMethod) bool {
		return m.Name == req.Name && m.Active && m.FeePercentage.Equal(dec("1.99")) && m.CreatedBy == "user-1"
	})).Return(&domain.PaymentMethod{ID: "pm-1", Name: req.Name}, nil).Once()

	method, err := suite.service.CreatePaymentMethod(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("pm-1", method.ID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentMethodServiceTestSuite) TestCreatePaymentMethod_FeeOutOfRange() {
	_, err := suite.service.CreatePaymentMethod(context.Background(), dto.CreatePaymentMethodRequest{Name: "x", FeePercentage: dec("101")}, "user-1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentMethodServiceTestSuite) TestUpdatePaymentMethod_NegativeDays() {
	ctx := context.Background()
	suite.mockRepo.On("FindPaymentMethodByID", ctx, "pm-1").Return(&domain.PaymentMethod{ID: "pm-1", Name: "Pix"}, nil).Once()

	days := -1
	_, err := suite.service.UpdatePaymentMethod(ctx, "pm-1", dto.UpdatePaymentMethodRequest{SettlementDays: &days}, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePaymentMethod", mock.Anything, mock.Anything)
}

func (suite *PaymentMethodServiceTestSuite) TestListPaymentMethods_Empty() {
	ctx := context.Background()
	suite.mockRepo.On("ListPaymentMethods", ctx, true).Return(nil, nil).Once()

	methods, err := suite.service.ListPaymentMethods(ctx, true)

	suite.Require().NoError(err)
	suite.NotNil(methods)
	suite.Empty(methods)
}

func (suite *PaymentMethodServiceTestSuite) TestDeletePaymentMethod_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("DeletePaymentMethod", ctx, "pm-1").Return(assert.AnError).Once()

	err := suite.service.DeletePaymentMethod(ctx, "pm-1")

	suite.ErrorIs(err, assert.AnError)
}

func TestPaymentMethodService(t *testing.T) {
	suite.Run(t, new(PaymentMethodServiceTestSuite))
}

func TestAttachmentService(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured store", func(t *testing.T) {
		svc := services.NewAttachmentService(nil)
		_, err := svc.Upload(ctx, services.AttachmentReceipt, "nota.pdf", "application/pdf", nil)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("rejects unknown kind and content type", func(t *testing.T) {
		svc := services.NewAttachmentService(new(MockAttachmentStore))
		_, err := svc.Upload(ctx, "avatars", "a.png", "image/png", nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		_, err = svc.Upload(ctx, services.AttachmentReceipt, "a.exe", "application/octet-stream", nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("stores under kind prefix", func(t *testing.T) {
		store := new(MockAttachmentStore)
		store.On("Put", ctx, mock.MatchedBy(func(name string) bool {
			return len(name) > len("deposit-proofs/") && name[:len("deposit-proofs/")] == "deposit-proofs/"
		}), "image/jpeg", nil).Return("https://storage.googleapis.com/b/deposit-proofs/x.jpg", nil).Once()

		svc := services.NewAttachmentService(store)
		url, err := svc.Upload(ctx, services.AttachmentDepositProof, "comprovante.jpg", "image/jpeg", nil)

		assert.NoError(t, err)
		assert.Equal(t, "https://storage.googleapis.com/b/deposit-proofs/x.jpg", url)
		store.AssertExpectations(t)
	})
}
