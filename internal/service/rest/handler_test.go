package rest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/ocs/internal/domain"
	"github.com/vladislavdragonenkov/ocs/internal/service/order"
	"github.com/vladislavdragonenkov/ocs/internal/service/rest"
	"github.com/vladislavdragonenkov/ocs/internal/storage/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, domain.ProductRepository) {
	t.Helper()

	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()

	require.NoError(t, customers.Create(domain.Customer{ID: "c1", Name: "Alice"}))
	require.NoError(t, products.Create(domain.Product{ID: "p1", Name: "Keyboard", PriceMinor: 1000, Quantity: 5}))
	require.NoError(t, products.Create(domain.Product{ID: "p2", Name: "Mouse", PriceMinor: 250, Quantity: 10}))

	svc := order.NewServiceWithoutMetrics(customers, products, orders, nil)
	handler := rest.NewHandler(svc, orders, nil)

	server := httptest.NewServer(rest.NewRouter(handler))
	t.Cleanup(server.Close)
	return server, products
}

func postOrder(t *testing.T, server *httptest.Server, body rest.CreateOrderRequest) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/orders", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) rest.ErrorResponse {
	t.Helper()
	var out rest.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateOrderEndpoint_Success(t *testing.T) {
	server, products := newTestServer(t)

	resp := postOrder(t, server, rest.CreateOrderRequest{
		CustomerID: "c1",
		Lines: []rest.OrderLineRequest{
			{ProductID: "p1", Qty: 3},
			{ProductID: "p2", Qty: 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created rest.OrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "c1", created.CustomerID)
	require.Equal(t, int64(3250), created.AmountMinor)
	require.Len(t, created.Lines, 2)
	require.Equal(t, "p1", created.Lines[0].ProductID)
	require.Equal(t, int64(1000), created.Lines[0].PriceMinor)

	remaining, err := products.Get("p1")
	require.NoError(t, err)
	require.Equal(t, int32(2), remaining.Quantity)
}

func TestCreateOrderEndpoint_CustomerNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postOrder(t, server, rest.CreateOrderRequest{
		CustomerID: "ghost",
		Lines:      []rest.OrderLineRequest{{ProductID: "p1", Qty: 1}},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "customer_not_found", decodeError(t, resp).Error)
}

func TestCreateOrderEndpoint_ProductNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postOrder(t, server, rest.CreateOrderRequest{
		CustomerID: "c1",
		Lines:      []rest.OrderLineRequest{{ProductID: "missing", Qty: 1}},
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "product_not_found", decodeError(t, resp).Error)
}

func TestCreateOrderEndpoint_InsufficientStock(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postOrder(t, server, rest.CreateOrderRequest{
		CustomerID: "c1",
		Lines:      []rest.OrderLineRequest{{ProductID: "p1", Qty: 100}},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "insufficient_stock", decodeError(t, resp).Error)
}

func TestCreateOrderEndpoint_InvalidQuantity(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postOrder(t, server, rest.CreateOrderRequest{
		CustomerID: "c1",
		Lines:      []rest.OrderLineRequest{{ProductID: "p1", Qty: 0}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_quantity", decodeError(t, resp).Error)
}

func TestCreateOrderEndpoint_EmptyOrder(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postOrder(t, server, rest.CreateOrderRequest{CustomerID: "c1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "empty_order", decodeError(t, resp).Error)
}

func TestCreateOrderEndpoint_InvalidJSON(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/orders", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid_json", decodeError(t, resp).Error)
}

func TestGetOrderEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postOrder(t, server, rest.CreateOrderRequest{
		CustomerID: "c1",
		Lines:      []rest.OrderLineRequest{{ProductID: "p2", Qty: 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created rest.OrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	getResp, err := http.Get(server.URL + "/orders/" + created.ID)
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var fetched rest.OrderResponse
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&fetched))
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, int64(500), fetched.AmountMinor)
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/orders/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "order_not_found", decodeError(t, resp).Error)
}

func TestListCustomerOrdersEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	for i := 0; i < 2; i++ {
		resp := postOrder(t, server, rest.CreateOrderRequest{
			CustomerID: "c1",
			Lines:      []rest.OrderLineRequest{{ProductID: "p2", Qty: 1}},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := http.Get(server.URL + "/customers/c1/orders")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []rest.OrderResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	require.Len(t, orders, 2)
}
