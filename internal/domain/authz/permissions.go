package authz

// Permisos usados por las rutas de la API.
const (
	CreateProduct    = "create:product"
	ReadProduct      = "read:product"
	UpdateProduct    = "update:product"
	DeleteProduct    = "delete:product"
	ManageUsers      = "manage:users"
	ManageRoles      = "manage:roles"
	ManageCategories = "manage:categories"
)

// Permission entrada del catálogo que ve el frontend al editar roles.
type Permission struct {
	Name        string
	Description string
}

// Catalog permisos conocidos. Es orientativo: un rol puede guardar cualquier string.
var Catalog = []Permission{
	{Name: CreateProduct, Description: "Create products"},
	{Name: ReadProduct, Description: "Read products"},
	{Name: UpdateProduct, Description: "Update products"},
	{Name: DeleteProduct, Description: "Delete products"},
	{Name: ManageUsers, Description: "List users and assign roles"},
	{Name: ManageRoles, Description: "Manage roles"},
	{Name: ManageCategories, Description: "Create, update and delete categories"},
}
