package icon

// Placeholder is shown for entries whose icon cannot be resolved.
const Placeholder = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAEAAAABACAYAAACqaXHeAAAACXBIWXMAAAsTAAALEwEAmpwYAAADm0lEQVR4nO2bPWgUQRSAv0TQ/GACIoiVgprS0kpQwcr4g/EHlVzAQlQEyanxF8KBojaKjYSLSUBFGwtBsQrBJkRLGwVjooU2WiQRRYmiJwOz4WVudm8v3mb3NvPgwTJvZ96+b3dm583OQrE0AruAU8C5lGgW2Ak0ECA1QBcwBRRSqpPAaR3rLKkFHibgAudLH5gQuowTxoA8cD0lmtcxyRhVF5/p8/KxvwMsIX2iYuo3ukMDenDwCt+lNHhPVGzjIt7tqvCMKOgh/ZI3u0FOFKhjc3DMiNdJRpeFtSdRiuLNBQDosIygmTLsVQ8gYwmwvQx71QOo1QF5r5N2SxcIslc9gDSKA4ADgC+AwQRkblHrYBCAwgLTnAPAbADDCcjcotbhIAA50i/uLYADgAOAA4AD4J4AHICctSDlEimARuA2MAA0B5zXAlwFnmpVx+vm4K8VeAzsTgqAHtFWp885F4Hflnm5Kjtfhq9VwE9dV33XiB1AixGYra0TIRKUoyH93TXqxQ7gkS3TEqK6xFdhHwEOAAeBF8YXm6YSvtYDf5IEYAPwtwSA/cL2FqgTNnU8Kuz7Svh7ZnlyYgXw3C/XFnJB2G5Y2rgp7EFjwSafrhMbgG1Biw1Bjsu0ezKSJAC1wCtRfzpiAHt8fMUGoEPU/QH0RQhgEfBGnHMrbgCLjU/N10q09b8Ajgn7N2BF3ACyot4EsCxCAPXAR2Hv1uWxAVgKfBb11B4DIgRwSdi+aP+xArgi6nwS28+iALDc2MKjZpPECWAl8F3UORwyyLkCkPOD93rsiRVApzj/tR6dowQg776aNhM3gJw4/4P+1ubpuDHdbasAABnkkOFP2gZC5BAVAdBtOA5S9XawTYXVYx12KmzmGEF6cj4AbPHJ522q7pItGRo1kqF6vUXPs+8VtqGQvtQ1bZ4PAEpWA1stek+0lTcGrGajP6sU+JDWl8ZT02Ts7dvo408CUNcU63pAmLaOh7iTRwgvsQyCYWeHfktiZ4FflsCnxYQqrEyJRZREAGjW+3H7SozIa/Vk6onWy8CaOfhr04uqiVkUrQZxAHAAcABwAHAA3BOAA5BD/0cn5+9pl14Rb1YV7BAFYyn/aapOryp58bai1/MmRWF/SiHU6UUTmXXWe0bZDQp6ZSefgJ3dldJe484XJWs1+nfSwgLR+7b/h2v0f3SyO6RNJ/SdLwoeIWpMUAOjGiHj3tldKVWxqL9EZ/q8J/8AgrX3iTePfdwAAAAASUVORK5CYII="
