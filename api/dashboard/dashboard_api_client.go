package dashboard

import (
	"context"

	"covid-dashboard/api"
	"covid-dashboard/models"
)

// DashboardApiClient embeds the common HTTPClient
type DashboardApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
}

// NewDashboardApiClient creates a new instance of DashboardApiClient
func NewDashboardApiClient(httpClient *api.HTTPClient) *DashboardApiClient {
	return &DashboardApiClient{
		HTTPClient: httpClient,
	}
}

// GetAggregate retrieves a category -> number object, keeping key order.
func (c *DashboardApiClient) GetAggregate(ctx context.Context, endpoint string) (models.RawAggregate, error) {
	var response models.RawAggregate
	if err := c.Get(ctx, endpoint, &response); err != nil {
		return models.RawAggregate{}, err
	}
	return response, nil
}

// GetSemesterMatrix retrieves the semester -> department -> municipality counts.
func (c *DashboardApiClient) GetSemesterMatrix(ctx context.Context) (models.SemesterDepartmentMatrix, error) {
	var response models.SemesterDepartmentMatrix
	if err := c.Get(ctx, EndpointSemestreDeptoMunicipio, &response); err != nil {
		return nil, err
	}
	if response == nil {
		response = models.SemesterDepartmentMatrix{}
	}
	return response, nil
}
