package usercontext

// Locals key holding the request's UserContext.
const LocalsKey = "USER_CONTEXT"
